package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/primegen/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for primegen
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_primegen()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "gen factor cache completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--limit -l --output -o --max-limit --nocache"

    case "$cmd" in
        gen)
            local opts="$common --out --quiet -q --s3-bucket --s3-key --aws-profile --aws-region"
            ;;
        factor)
            local opts="$common --capacity --workers -w --stats --attrs -a --color -c --filter -f --sort -s --titles -t"
            ;;
        cache)
            local opts="purge dir --hours --all"
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
        if [[ "$cmd" == "gen" ]]; then
            COMPREPLY=( $(compgen -W "text json yaml python js" -- "$cur") )
        else
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        fi
        return 0
    fi

    if [[ "$prev" == "--out" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _primegen primegen
`

const zshCompletionScript = `#compdef primegen

_primegen() {
  local -a cmds
  cmds=(
    'gen:generate the primes up to a limit'
    'factor:factorize integers over a sieve'
    'cache:manage the sieve result cache'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
    '(-l --limit)'{-l,--limit}'[sieve bound]:limit:'
    '--max-limit[refuse to sieve above this bound]:limit:'
    '--nocache[bypass the sieve result cache]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'primegen command' cmds
    return
  fi

  case $words[2] in
    gen)
      _arguments \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml python js)' \
        '--out[output file]:file:_files' \
        '(-q --quiet)'{-q,--quiet}'[suppress progress]' \
        '--s3-bucket[S3 bucket]:bucket:' \
        '--s3-key[S3 object key]:key:' \
        '--aws-profile[AWS profile]:profile:' \
        '--aws-region[AWS region]:region:'
      ;;
    factor)
      _arguments \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '--capacity[cache capacity]:entries:' \
        '(-w --workers)'{-w,--workers}'[concurrent factorizations]:workers:' \
        '--stats[print cache statistics]' \
        '(-a --attrs)'{-a,--attrs}'[table columns]:attrs:' \
        '(-c --color)'{-c,--color}'[colored output]' \
        '(-f --filter)'{-f,--filter}'[filter results]:filter:' \
        '(-s --sort)'{-s,--sort}'[sort results]:keys:' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '*:value:'
      ;;
    cache)
      _arguments '1: :((purge dir))' '--hours[minimum age]:hours:' '--all[remove everything]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _primegen primegen
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(stderr(cmd), "usage: primegen completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "primegen completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
