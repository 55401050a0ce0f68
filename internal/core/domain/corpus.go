package domain

import (
	"fmt"
	"strings"
)

// SearchTopic fetches the top Count search results for Query.
type SearchTopic struct {
	// Query is the search text sent to the document source.
	// It also becomes the category of every article it yields.
	Query string `yaml:"query"`

	// Count is the maximum number of search results to fetch.
	Count int `yaml:"count"`
}

// Corpus lists the topics a build fetches.
// Searches are fetched before pages and each keeps its listed order.
type Corpus struct {
	// Searches are topics expanded through the source's search endpoint.
	Searches []SearchTopic `yaml:"searches"`

	// Pages are exact page titles. A disambiguation page falls back to
	// its first listed option.
	Pages []string `yaml:"pages"`
}

// Validate checks that every topic is usable.
func (c Corpus) Validate() error {
	if len(c.Searches) == 0 && len(c.Pages) == 0 {
		return fmt.Errorf("%w: corpus has no topics", ErrInvalidInput)
	}
	for i, s := range c.Searches {
		if strings.TrimSpace(s.Query) == "" {
			return fmt.Errorf("%w: search topic %d has no query", ErrInvalidInput, i)
		}
		if s.Count < 1 {
			return fmt.Errorf("%w: search topic %q needs count >= 1", ErrInvalidInput, s.Query)
		}
	}
	for i, p := range c.Pages {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: page topic %d has no title", ErrInvalidInput, i)
		}
	}
	return nil
}

// TopicCount returns the number of topics in the corpus.
func (c Corpus) TopicCount() int {
	return len(c.Searches) + len(c.Pages)
}

// DefaultCorpus returns the built-in mix of search and page topics.
func DefaultCorpus() Corpus {
	return Corpus{
		Searches: []SearchTopic{
			{Query: "artificial intelligence", Count: 4},
			{Query: "Python (programming language)", Count: 3},
			{Query: "cooking", Count: 3},
			{Query: "nigerian civil war", Count: 3},
			{Query: "relaxation", Count: 3},
			{Query: "sports", Count: 3},
			{Query: "space exploration", Count: 3},
			{Query: "climate change", Count: 3},
		},
		Pages: []string{
			"Photosynthesis",
			"Electric guitar",
			"Basketball",
			"Soccer",
			"Solar System",
			"Vaccination",
			"Coffee",
			"Yoga",
			"Netflix",
			"Antibiotics",
		},
	}
}

// SampleQueries returns the questions `semdex run` asks after a build.
func SampleQueries() []string {
	return []string{
		"Why do some computer programs seem to 'get smarter' the more data they see?",
		"What were the major events that happened during Nigeria's civil war?",
		"Healthy cooking techniques that can help you lose weight?",
		"How does the process of photosynthesis work in plants?",
		"Most popular sports in the world and their origins?",
		"How did humans manage space exploration?",
		"What everyday habits can slow down environmental damage?",
		"How does a simple cup of coffee end up affecting your brain?",
		"What is the impact of antibiotics on human health and society?",
		"Why is one particular coding language everywhere in data science?",
		"What are the best relaxing hobbies for stress relief?",
	}
}
