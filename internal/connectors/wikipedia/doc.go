// Package wikipedia implements driven.DocumentSource over the MediaWiki
// Action API. Search resolves a query into page titles and Page fetches the
// plain-text introduction of a single article.
package wikipedia
