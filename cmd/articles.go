package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextgen-ti/kbportal/internal/browse"
	"github.com/nextgen-ti/kbportal/internal/catalog"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List knowledge-base articles",
	Long:  `Lists the troubleshooting articles, optionally narrowed by category and a case-insensitive text query, exactly as the portal's listing does.`,
	Args:  cobra.NoArgs,
	RunE:  runArticles,
}

var articlesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one article with its numbered solution steps",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesShow,
}

func init() {
	articlesCmd.Flags().String("category", "", "filter by category id or label")
	articlesCmd.Flags().String("query", "", "filter by text in title or description")
	articlesCmd.Flags().Bool("json", false, "output results as JSON")
	articlesShowCmd.Flags().Bool("markdown", false, "print the article as Markdown")
	articlesCmd.AddCommand(articlesShowCmd)
	rootCmd.AddCommand(articlesCmd)
}

func runArticles(cmd *cobra.Command, args []string) error {
	categoryFlag, _ := cmd.Flags().GetString("category")
	query, _ := cmd.Flags().GetString("query")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	category, err := catalog.ParseCategory(categoryFlag)
	if err != nil {
		return err
	}

	results := browse.Filter(catalog.Default().Articles(), category, query)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Print(renderArticleList(results))
	return nil
}

func runArticlesShow(cmd *cobra.Command, args []string) error {
	a, ok := catalog.Default().Article(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", browse.ErrArticleNotFound, args[0])
	}

	if md, _ := cmd.Flags().GetBool("markdown"); md {
		fmt.Print(a.Markdown())
		return nil
	}
	fmt.Print(renderArticle(a))
	return nil
}
