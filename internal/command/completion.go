// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mpctl/mpctl/internal/meta"
)

const bashCompletionScript = `# bash completion for mpctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_mpctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "eq propagate completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema --profile -p --region -r"

    case "$cmd" in
        eq)
            local opts="$common --catalog --types --ids"
            ;;
        propagate)
            local opts="$common --portfolio --home-region --idempotent-tokens"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cmd" == "propagate" && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _mpctl mpctl
`

const zshCompletionScript = `#compdef mpctl

_mpctl() {
  local -a cmds
  cmds=(
    'eq:enumerate marketplace catalog entities'
    'propagate:associate a product and propagate its license grants'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '(-p --profile)'{-p,--profile}'[shared config profile]:profile'
  '(-r --region)'{-r,--region}'[region]:region'
  '--schema[list output attributes]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'mpctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    eq)
      _arguments -C \
        $common \
        '--catalog[catalog to enumerate]:catalog' \
        '--types[entity types]:types' \
        '--ids[include entity ids]'
      ;;
    propagate)
      _arguments -C \
        $common \
        '--portfolio[target portfolio]:portfolio' \
        '--home-region[license home region]:region' \
        '--idempotent-tokens[derive stable grant tokens]' \
        '1:event file:_files'
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
compdef _mpctl mpctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := GetMeta(cmd).Out()

	shell := cmd.Args().First()
	if shell == "" {
		shell = os.Getenv("SHELL")
	}

	switch {
	case strings.HasSuffix(shell, "bash"):
		fmt.Fprint(w, bashCompletionScript)
	case strings.HasSuffix(shell, "zsh"):
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: mpctl completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "mpctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
