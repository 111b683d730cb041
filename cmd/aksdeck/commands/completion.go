package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for aksdeck.

To load completions:

Bash:
  $ source <(aksdeck completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ aksdeck completion bash > /etc/bash_completion.d/aksdeck
  # macOS:
  $ aksdeck completion bash > $(brew --prefix)/etc/bash_completion.d/aksdeck

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ aksdeck completion zsh > "${fpath[1]}/_aksdeck"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ aksdeck completion fish | source
  # To load completions for each session, execute once:
  $ aksdeck completion fish > ~/.config/fish/completions/aksdeck.fish

PowerShell:
  PS> aksdeck completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> aksdeck completion powershell > aksdeck.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
