// Package connectors holds the document sources a corpus build fetches
// from. Each connector implements driven.DocumentSource for one remote
// service; wikipedia is the only one today.
package connectors
