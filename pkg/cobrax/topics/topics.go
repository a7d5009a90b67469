// Package topics provides a topic-based help system for Cobra CLI
// applications. Topics are Markdown or text files read from an fs.FS, so
// they can be embedded in the binary.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	defaultHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Format returns the topic file extension
func (t *Topic) Format() string {
	return path.Ext(t.FilePath)
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content; defaults to PlainRenderer.
	Renderer Renderer
}

// New creates a TopicManager reading topics from fsys
func New(fsys fs.FS, opts Options) *TopicManager {
	tm := &TopicManager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}
	return tm
}

// scanTopics loads every file with a supported extension
func (tm *TopicManager) scanTopics() error {
	return fs.WalkDir(tm.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		supported := false
		for _, validExt := range tm.extensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{
			Name:     name,
			FilePath: p,
			Content:  string(content),
		}
		return nil
	})
}

// GetTopic retrieves a topic by name. Flag-style names ("--level") also
// match "option-level" topics.
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, exists := tm.topics[name]; exists {
		return topic, true
	}
	topic, exists := tm.topics["option-"+name]
	return topic, exists
}

// ListTopics returns all topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// index renders the topic list as Markdown
func (tm *TopicManager) index(app string) string {
	var general, options []string
	for _, name := range tm.ListTopics() {
		if opt, ok := strings.CutPrefix(name, "option-"); ok {
			options = append(options, "- `--"+opt+"`")
		} else {
			general = append(general, "- `"+name+"`")
		}
	}
	if len(general)+len(options) == 0 {
		return "No help topics available."
	}

	var b strings.Builder
	b.WriteString("# Help topics\n")
	if len(general) > 0 {
		b.WriteString("\n## General\n\n" + strings.Join(general, "\n") + "\n")
	}
	if len(options) > 0 {
		b.WriteString("\n## Options\n\n" + strings.Join(options, "\n") + "\n")
	}
	fmt.Fprintf(&b, "\nUse `%s help <topic>` to read about a specific topic.\n", app)
	return b.String()
}

// Initialize sets up the topic-based help system on rootCmd
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := New(fsys, opts)
	if err := tm.scanTopics(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	tm.defaultHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				tm.defaultHelp(rootCmd, []string{})
				return nil
			}
			if args[0] == "topics" {
				return tm.renderer.Render(cmd.OutOrStdout(), tm.index(rootCmd.Name()), ".md")
			}
			if topic, exists := tm.GetTopic(args[0]); exists {
				return tm.renderer.Render(cmd.OutOrStdout(), topic.Content, topic.Format())
			}
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				tm.defaultHelp(target, args)
				return nil
			}
			return fmt.Errorf("unknown help topic %q, run '%s help topics' for a list", args[0], rootCmd.Name())
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)

	return tm, nil
}
