// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/meta"
)

const bashCompletionScript = `# bash completion for dropcfg
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_dropcfg()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "check defaults get html paths samples completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --config -C --output -o --padding --titles -t --tldr"
    local table="--attrs -a --filter -f --sort -s"

    case "$cmd" in
        check|paths|html|samples)
            local opts="$common $table"
            ;;
        get)
            local opts="$common --schema"
            ;;
        defaults)
            local opts="$common --ignore --no-pager"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --config|-C)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cmd" == "html" && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _dropcfg dropcfg
`

const zshCompletionScript = `#compdef dropcfg

_dropcfg() {
  local -a cmds
  cmds=(
    'check:validate settings and create the working directories'
    'defaults:diff the settings file against the resolved settings'
    'get:print a resolved settings value'
    'html:print the report path of pipeline scripts'
    'paths:list resolved directories'
    'samples:list the sample annotation'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-C --config)'{-C,--config}'[DROP settings file]:file:_files'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between text columns]:padding'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  local -a table
  table=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'dropcfg commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    check|paths|samples)
      _arguments -C $common $table
      ;;
    html)
      _arguments -C $common $table '*:script:_files'
      ;;
    get)
      _arguments -C $common '--schema[list settings keys]' '1:key'
      ;;
    defaults)
      _arguments -C $common '--ignore[keys to leave out of the diff]:keys' '--no-pager[write the diff without paging]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _dropcfg dropcfg
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if err := ShellValidator(shell); err != nil {
		return err
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		default:
			fmt.Fprintln(os.Stderr, "usage: dropcfg completion [bash|zsh]")
			return nil
		}
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "dropcfg completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
