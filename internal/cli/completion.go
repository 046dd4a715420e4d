package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bookfair.

To load completions:

Bash:
  $ source <(bookfair completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ bookfair completion bash > /etc/bash_completion.d/bookfair
  # macOS:
  $ bookfair completion bash > $(brew --prefix)/etc/bash_completion.d/bookfair

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ bookfair completion zsh > "${fpath[1]}/_bookfair"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ bookfair completion fish | source

  # To load completions for each session, execute once:
  $ bookfair completion fish > ~/.config/fish/completions/bookfair.fish

PowerShell:
  PS> bookfair completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> bookfair completion powershell > bookfair.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Completion scripts need no config, store or hooks.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
