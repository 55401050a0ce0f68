package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var topicsForce bool

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show or create the corpus topic file",
	Long: `The corpus is a list of search topics, each fetching its top results,
followed by exact page titles. It is read from --topics, from
~/.semdex/corpus.yaml when present, or from the built-in list.`,
	RunE: runTopicsShow,
}

var topicsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active corpus as YAML",
	Args:  cobra.NoArgs,
	RunE:  runTopicsShow,
}

var topicsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the active corpus to the topic file for editing",
	Args:  cobra.NoArgs,
	RunE:  runTopicsInit,
}

func init() {
	topicsInitCmd.Flags().BoolVarP(&topicsForce, "force", "f", false, "overwrite an existing topic file")
	topicsCmd.AddCommand(topicsShowCmd)
	topicsCmd.AddCommand(topicsInitCmd)
	rootCmd.AddCommand(topicsCmd)
}

func runTopicsShow(cmd *cobra.Command, _ []string) error {
	corpus, err := loadTopics()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(corpus); err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}
	return enc.Close()
}

func runTopicsInit(cmd *cobra.Command, _ []string) error {
	if services == nil || services.WriteTopics == nil {
		return errors.New("topic file support not configured")
	}

	corpus, err := loadTopics()
	if err != nil {
		return err
	}

	path, err := services.WriteTopics(topicsPath, corpus, topicsForce)
	if err != nil {
		return fmt.Errorf("failed to write topics: %w", err)
	}
	cmd.Printf("Wrote %d topics to %s\n", corpus.TopicCount(), path)
	return nil
}
