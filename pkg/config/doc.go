// Package config loads rendering defaults.
//
// Values are layered with koanf, later sources overriding earlier ones:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. a user file: an explicit path, or $XDG_CONFIG_HOME/beautify/config.toml
//     (config.yaml and config.yml are accepted too)
//  3. BEAUTIFY_* environment variables, with "__" separating nested keys
//     (BEAUTIFY_CODE__THEME=dracula sets code.theme)
//  4. programmatic overrides
package config
