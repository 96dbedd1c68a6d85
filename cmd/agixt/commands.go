package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leofalp/agixt-go/core/client"
	"github.com/leofalp/agixt-go/core/jsonmap"
	"github.com/leofalp/agixt-go/core/parse"
)

// errUsage marks errors caused by a malformed command line.
var errUsage = errors.New("usage")

// command is one CLI subcommand. run parses its own flags and positional
// arguments and returns the value to print.
type command struct {
	name    string
	args    string
	summary string
	run     func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error)
}

func commands() []command {
	return []command{
		{"providers", "", "list providers", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 0); err != nil {
				return nil, err
			}
			return c.GetProviders(ctx)
		}},
		{"providers-by-service", "<service>", "list providers implementing a service", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			return c.GetProvidersByService(ctx, fs.Arg(0))
		}},
		{"provider-settings", "<provider>", "show a provider's default settings", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			return c.GetProviderSettings(ctx, fs.Arg(0))
		}},
		{"embed-providers", "", "list embedding providers", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 0); err != nil {
				return nil, err
			}
			return c.GetEmbedProviders(ctx)
		}},
		{"embedders", "", "show embedders", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 0); err != nil {
				return nil, err
			}
			return c.GetEmbedders(ctx)
		}},
		{"agents", "", "list agents", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 0); err != nil {
				return nil, err
			}
			return c.GetAgents(ctx)
		}},
		{"agent-config", "<agent>", "show an agent's configuration", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			return c.GetAgentConfig(ctx, fs.Arg(0))
		}},
		{"add-agent", "[-settings JSON] <agent>", "create an agent", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			settings := fs.String("settings", "", "agent settings object")
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			obj, err := objectFlag("settings", *settings)
			if err != nil {
				return nil, err
			}
			return c.AddAgent(ctx, fs.Arg(0), obj)
		}},
		{"import-agent", "[-settings JSON] [-commands JSON] <agent>", "create an agent with settings and commands", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			settings := fs.String("settings", "", "agent settings object")
			commandsJSON := fs.String("commands", "", "enabled commands object")
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			settingsObj, err := objectFlag("settings", *settings)
			if err != nil {
				return nil, err
			}
			commandsObj, err := objectFlag("commands", *commandsJSON)
			if err != nil {
				return nil, err
			}
			return c.ImportAgent(ctx, fs.Arg(0), settingsObj, commandsObj)
		}},
		{"rename-agent", "<agent> <new-name>", "rename an agent", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 2); err != nil {
				return nil, err
			}
			return c.RenameAgent(ctx, fs.Arg(0), fs.Arg(1))
		}},
		{"update-agent-settings", "-settings JSON <agent>", "replace an agent's settings", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			settings := fs.String("settings", "", "agent settings object")
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			obj, err := objectFlag("settings", *settings)
			if err != nil {
				return nil, err
			}
			return c.UpdateAgentSettings(ctx, fs.Arg(0), obj)
		}},
		{"update-agent-commands", "-commands JSON <agent>", "replace an agent's enabled commands", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			commandsJSON := fs.String("commands", "", "enabled commands object")
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			obj, err := objectFlag("commands", *commandsJSON)
			if err != nil {
				return nil, err
			}
			return c.UpdateAgentCommands(ctx, fs.Arg(0), obj)
		}},
		{"delete-agent", "<agent>", "delete an agent", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 1); err != nil {
				return nil, err
			}
			return c.DeleteAgent(ctx, fs.Arg(0))
		}},
		{"conversations", "[-agent name]", "list conversations, optionally of one agent", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			agent := fs.String("agent", "", "only list conversations of this agent")
			if err := parseArgs(fs, args, 0); err != nil {
				return nil, err
			}
			return c.GetConversations(ctx, *agent)
		}},
		{"conversation", "[-limit n] [-page n] <agent> <conversation>", "show a conversation's history", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			limit := fs.Int("limit", 100, "messages per page")
			page := fs.Int("page", 1, "page number")
			if err := parseArgs(fs, args, 2); err != nil {
				return nil, err
			}
			return c.GetConversation(ctx, fs.Arg(0), fs.Arg(1), *limit, *page)
		}},
		{"new-conversation", "[-content JSON] <agent> [conversation]", "create a conversation; the name defaults to a random one", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			content := fs.String("content", "", "initial messages: an array of objects")
			if err := parseArgsRange(fs, args, 1, 2); err != nil {
				return nil, err
			}
			name := fs.Arg(1)
			if name == "" {
				name = "conversation-" + uuid.NewString()
			}
			messages, err := parse.Objects(*content)
			if err != nil {
				return nil, fmt.Errorf("invalid -content: %w", err)
			}
			return c.NewConversation(ctx, fs.Arg(0), name, messages)
		}},
		{"delete-conversation", "<agent> <conversation>", "delete a conversation", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 2); err != nil {
				return nil, err
			}
			return c.DeleteConversation(ctx, fs.Arg(0), fs.Arg(1))
		}},
		{"delete-message", "<agent> <conversation> <message>", "delete the message with this exact text", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 3); err != nil {
				return nil, err
			}
			return c.DeleteConversationMessage(ctx, fs.Arg(0), fs.Arg(1), fs.Arg(2))
		}},
		{"update-message", "<agent> <conversation> <message> <new-message>", "replace the text of the message with this exact text", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 4); err != nil {
				return nil, err
			}
			return c.UpdateConversationMessage(ctx, fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(3))
		}},
		{"prompt", "[-args JSON] <agent> <prompt> [key=value ...]", "run a prompt template", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			argsJSON := fs.String("args", "", "prompt arguments object")
			if err := parseArgsRange(fs, args, 2, -1); err != nil {
				return nil, err
			}
			promptArgs, err := objectFlag("args", *argsJSON)
			if err != nil {
				return nil, err
			}
			for _, pair := range fs.Args()[2:] {
				key, value, ok := strings.Cut(pair, "=")
				if !ok || key == "" {
					return nil, fmt.Errorf("%w: prompt argument %q is not key=value", errUsage, pair)
				}
				promptArgs.SetRaw(key, parse.Value(value))
			}
			return c.PromptAgent(ctx, fs.Arg(0), fs.Arg(1), promptArgs)
		}},
		{"instruct", "[-conversation name] <agent> <input>", "run the instruct prompt", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			conversation := fs.String("conversation", "", "conversation name")
			if err := parseArgs(fs, args, 2); err != nil {
				return nil, err
			}
			return c.Instruct(ctx, fs.Arg(0), fs.Arg(1), *conversation)
		}},
		{"chat", "[-conversation name] [-context-results n] <agent> <input>", "run the Chat prompt", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			conversation := fs.String("conversation", "", "conversation name")
			contextResults := fs.Int("context-results", 4, "memory results injected into the prompt")
			if err := parseArgs(fs, args, 2); err != nil {
				return nil, err
			}
			return c.Chat(ctx, fs.Arg(0), fs.Arg(1), *conversation, *contextResults)
		}},
		{"smartinstruct", "[-conversation name] <agent> <input>", "same as instruct", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			conversation := fs.String("conversation", "", "conversation name")
			if err := parseArgs(fs, args, 2); err != nil {
				return nil, err
			}
			return c.SmartInstruct(ctx, fs.Arg(0), fs.Arg(1), *conversation)
		}},
		{"smartchat", "[-conversation name] <agent> <input>", "chat with one context result", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			conversation := fs.String("conversation", "", "conversation name")
			if err := parseArgs(fs, args, 2); err != nil {
				return nil, err
			}
			return c.SmartChat(ctx, fs.Arg(0), fs.Arg(1), *conversation)
		}},
		{"status", "", "fetch providers, agents and conversations at once", func(ctx context.Context, c *client.Client, fs *flag.FlagSet, args []string) (any, error) {
			if err := parseArgs(fs, args, 0); err != nil {
				return nil, err
			}
			return fetchStatus(ctx, c)
		}},
	}
}

// status is the combined output of the status command.
type status struct {
	URI           string           `json:"uri"`
	Providers     []string         `json:"providers"`
	Agents        []jsonmap.Object `json:"agents"`
	Conversations []string         `json:"conversations"`
}

// fetchStatus issues the three listing calls concurrently; the first failure
// cancels the others.
func fetchStatus(ctx context.Context, c *client.Client) (*status, error) {
	result := &status{URI: c.BaseURI()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		providers, err := c.GetProviders(ctx)
		result.Providers = providers
		return err
	})
	g.Go(func() error {
		agents, err := c.GetAgents(ctx)
		result.Agents = agents
		return err
	})
	g.Go(func() error {
		conversations, err := c.GetConversations(ctx, "")
		result.Conversations = conversations
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// parseArgs parses fs and requires exactly n positional arguments.
func parseArgs(fs *flag.FlagSet, args []string, n int) error {
	return parseArgsRange(fs, args, n, n)
}

// parseArgsRange parses fs and requires between lo and hi positional
// arguments; a negative hi means no upper bound.
func parseArgsRange(fs *flag.FlagSet, args []string, lo, hi int) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if got := fs.NArg(); got < lo || (hi >= 0 && got > hi) {
		return fmt.Errorf("%w: %s takes %s, got %d argument(s)", errUsage, fs.Name(), argCount(lo, hi), got)
	}
	return nil
}

func argCount(lo, hi int) string {
	switch {
	case lo == hi:
		return fmt.Sprintf("%d argument(s)", lo)
	case hi < 0:
		return fmt.Sprintf("at least %d argument(s)", lo)
	default:
		return fmt.Sprintf("%d to %d arguments", lo, hi)
	}
}

func objectFlag(name, value string) (jsonmap.Object, error) {
	obj, err := parse.Object(value)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s: %w", name, err)
	}
	return obj, nil
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands() {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: agixt [global flags] <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	cmds := commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-22s %s\n", cmd.name, cmd.summary)
		if cmd.args != "" {
			fmt.Fprintf(w, "  %-22s   %s %s\n", "", cmd.name, cmd.args)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	global.SetOutput(w)
	global.PrintDefaults()
}
