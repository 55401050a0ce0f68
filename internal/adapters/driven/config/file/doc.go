// Package file provides file-based adapters that persist to the semdex
// directory (~/.semdex by default).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - CorpusFile: YAML corpus topic lists
package file
