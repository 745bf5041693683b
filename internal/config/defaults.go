package config

// DefaultTagMessage is the annotated tag message template.
const DefaultTagMessage = "Release {{version}}"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# semrel configuration
# See 'semrel config keys' for all options

# Changelog settings
changelog:
  file: CHANGELOG.md                  # Markdown file updated by 'semrel changelog' and 'semrel release'
  exclude_types: []                   # Commit types left out of the changelog, e.g. [chore, other]

# Parsed commit export ('semrel commits')
export:
  file: parsed_commits.json           # Output file
  format: ""                          # json | yaml (empty = from file extension)

# Commit parsing
parser:
  breaking_footer: true               # Treat a BREAKING CHANGE: footer as a breaking change

# Release tag
tag:
  annotate: false                     # Create annotated tags instead of lightweight ones
  message: "Release {{version}}"      # Annotated tag message ({{version}} is replaced)
  tagger_name: ""                     # Tagger name (empty = git config user.name)
  tagger_email: ""                    # Tagger email (empty = git config user.email)

debug: false                          # Print [debug] lines on stderr
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog": map[string]interface{}{
			"file":          "CHANGELOG.md",
			"exclude_types": []string{},
		},
		// export: format is inferred from the file extension when empty.
		"export": map[string]interface{}{
			"file":   "parsed_commits.json",
			"format": "",
		},
		// parser: the footer rule only upgrades commits whose header already matched.
		"parser": map[string]interface{}{
			"breaking_footer": true,
		},
		// tag: lightweight by default; tagger falls back to the git config.
		"tag": map[string]interface{}{
			"annotate":     false,
			"message":      DefaultTagMessage,
			"tagger_name":  "",
			"tagger_email": "",
		},
		"debug": false,
	}
}
