// Package main provides newsctl, a terminal client for the newsdesk API.
//
// Usage:
//
//	newsctl [--server URL] feed [--pages N] [--output json]
//	newsctl [--server URL] headlines [--category C] [--output json]
//	newsctl [--server URL] saved [--output json]
//	newsctl [--server URL] save <article-url> [--pages N]
//	newsctl [--server URL] delete <id>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk/internal/client"
	"newsdesk/internal/handler/http/dto"
	"newsdesk/pkg/config"
)

const usage = `Usage: newsctl [--server URL] <command> [flags]

Commands:
  feed        page through technology news
  headlines   show top headlines for a category
  saved       list saved articles
  save        save a feed article by its URL
  delete      delete a saved article by id
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	global := flag.NewFlagSet("newsctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	server := global.String("server", config.GetEnvString("NEWSDESK_URL", "http://localhost:3001"), "API base URL")
	timeout := global.Duration("timeout", 15*time.Second, "per-request timeout")
	global.Usage = func() { _, _ = fmt.Fprint(stderr, usage) }
	if err := global.Parse(args); err != nil {
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	api := client.NewAPI(*server, nil)
	cmd := &command{api: api, timeout: *timeout, stdout: stdout, stderr: stderr}

	var err error
	switch rest[0] {
	case "feed":
		err = cmd.feed(ctx, rest[1:])
	case "headlines":
		err = cmd.headlines(ctx, rest[1:])
	case "saved":
		err = cmd.saved(ctx, rest[1:])
	case "save":
		err = cmd.save(ctx, rest[1:])
	case "delete":
		err = cmd.delete(ctx, rest[1:])
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown command %q\n\n", rest[0])
		global.Usage()
		return 2
	}

	var ue usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue):
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", ue)
		return 2
	default:
		logger.Error("command failed", slog.String("command", rest[0]), slog.Any("error", err))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

type command struct {
	api     *client.API
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

func (c *command) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *command) feed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	pages := fs.Int("pages", 1, "number of pages to load")
	output := fs.String("output", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	view := client.NewFeedView(c.api, client.DefaultPageSize)
	if err := c.loadPages(ctx, view, *pages); err != nil {
		return err
	}

	arts := view.Articles()
	if *output == "json" {
		return c.writeJSON(arts)
	}
	if err := c.writeArticles(arts, false); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.stdout, "\n%d of %d articles (page %d)\n", len(arts), view.TotalResults(), view.CurrentPage())
	if view.CanLoadMore() {
		_, _ = fmt.Fprintf(c.stdout, "more available: --pages %d\n", view.CurrentPage()+1)
	}
	return nil
}

// loadPages drives view until pages pages are loaded or the feed ends.
func (c *command) loadPages(ctx context.Context, view *client.FeedView, pages int) error {
	for i := 0; i < pages; i++ {
		if i > 0 && !view.CanLoadMore() {
			return nil
		}
		rctx, cancel := c.withTimeout(ctx)
		err := view.LoadMore(rctx)
		cancel()
		if err != nil {
			return errors.New(view.ErrorMessage())
		}
	}
	return nil
}

func (c *command) headlines(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("headlines", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	category := fs.String("category", "general", "news category")
	page := fs.Int("page", 1, "page number")
	output := fs.String("output", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	rctx, cancel := c.withTimeout(ctx)
	defer cancel()
	p, err := c.api.TopHeadlines(rctx, *category, *page, client.DefaultPageSize)
	if err != nil {
		return err
	}
	if *output == "json" {
		return c.writeJSON(p)
	}
	return c.writeArticles(p.Articles, false)
}

func (c *command) saved(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("saved", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	output := fs.String("output", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	view := client.NewBookmarkView(c.api)
	rctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if n, err := view.Load(rctx); err != nil {
		return fmt.Errorf("%s: %w", n.Message, err)
	}
	if *output == "json" {
		return c.writeJSON(view.Articles())
	}
	return c.writeArticles(view.Articles(), true)
}

func (c *command) save(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	pages := fs.Int("pages", 3, "feed pages to search for the article")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if fs.NArg() != 1 {
		return usageError("save requires exactly one article URL")
	}
	target := fs.Arg(0)

	feed := client.NewFeedView(c.api, client.DefaultPageSize)
	if err := c.loadPages(ctx, feed, *pages); err != nil {
		return err
	}
	var found *dto.Article
	for _, a := range feed.Articles() {
		if a.URL == target {
			found = a
			break
		}
	}
	if found == nil {
		return fmt.Errorf("article %s not found in the first %d feed pages", target, feed.CurrentPage())
	}

	rctx, cancel := c.withTimeout(ctx)
	defer cancel()
	n, err := client.NewBookmarkView(c.api).Save(rctx, found)
	_, _ = fmt.Fprintln(c.stdout, n.Message)
	if err != nil && !client.IsDuplicate(err) {
		return err
	}
	return nil
}

func (c *command) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if fs.NArg() != 1 {
		return usageError("delete requires exactly one article id")
	}

	rctx, cancel := c.withTimeout(ctx)
	defer cancel()
	n, err := client.NewBookmarkView(c.api).Delete(rctx, fs.Arg(0))
	_, _ = fmt.Fprintln(c.stdout, n.Message)
	return err
}

func (c *command) writeJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *command) writeArticles(arts []*dto.Article, withID bool) error {
	header := []string{"PUBLISHED", "SOURCE", "TITLE", "URL"}
	if withID {
		header = append([]string{"ID"}, header...)
	}
	rows := make([][]string, 0, len(arts))
	for _, a := range arts {
		src := ""
		if a.Source != nil {
			src = a.Source.Name
		}
		row := []string{shortDate(a.PublishedAt), src, a.Title, a.URL}
		if withID {
			row = append([]string{a.ID}, row...)
		}
		rows = append(rows, row)
	}
	return renderTable(c.stdout, header, rows)
}

// shortDate trims an RFC3339 timestamp to its date.
func shortDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}
