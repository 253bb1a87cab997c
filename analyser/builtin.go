package analyser

import (
	"fmt"
	"strings"

	"github.com/ArcletProject/Alconna/argv"
	"github.com/ArcletProject/Alconna/completion"
	"github.com/ArcletProject/Alconna/i18n"
	"github.com/ArcletProject/Alconna/node"
	"github.com/ArcletProject/Alconna/result"
	"github.com/ArcletProject/Alconna/shortcut"
)

// builtinNames maps every reserved token to the BuiltinKind it triggers
// (spec.md §4.4 step 5).
var builtinNames = map[string]node.BuiltinKind{
	"--help":     node.BuiltinHelp,
	"-h":         node.BuiltinHelp,
	"--shortcut": node.BuiltinShortcut,
	"--comp":     node.BuiltinCompletion,
	"?":          node.BuiltinCompletion,
}

// isBuiltinToken reports whether token names an enabled built-in option
// for the command that owns meta, used by the Args reserved-name callback
// (spec.md §4.2 step 2).
func (an *Analyser) isBuiltinToken(token string, meta node.Meta) bool {
	kind, ok := builtinNames[token]
	if !ok {
		return false
	}
	return !meta.DisableBuiltin[kind]
}

// renderHelp builds a minimal usage listing for a, grounded in spec.md's
// explicit Non-goal that help-page *layout* is out of scope: this returns
// plain text, not a styled page.
func renderHelp(a *node.Alconna, table *i18n.Table) string {
	var b strings.Builder
	b.WriteString(table.Format(i18n.KeyHelpHeading, a.ID()))
	b.WriteByte('\n')
	for _, o := range a.Options {
		if o.Hidden {
			continue
		}
		b.WriteString(table.Format(i18n.KeyOptionHelpLine, strings.Join(o.Names(), "|"), o.Help))
		b.WriteByte('\n')
	}
	for _, s := range a.Subcommands {
		b.WriteString(fmt.Sprintf("  %s  %s\n", strings.Join(s.Names(), "|"), s.Help))
	}
	return b.String()
}

// registerShortcutFromTokens implements the `--shortcut` registrar: the
// remaining tokens after the built-in name are `<key> <template...>`
// (spec.md §4.4 step 5, §6 "Shortcut DSL").
func registerShortcutFromTokens(store *shortcut.Store, commandID string, remaining []string) string {
	if len(remaining) < 2 {
		return "usage: --shortcut <key> <template>"
	}
	key := remaining[0]
	template := strings.Join(remaining[1:], " ")
	store.Add(commandID, shortcut.Shortcut{Key: key, Template: template})
	return fmt.Sprintf("registered shortcut %q", key)
}

func collectRemainingTexts(av *argv.Argv) []string {
	return collectTexts(av.Remaining())
}

func collectTexts(toks []argv.Token) []string {
	var out []string
	for _, tok := range toks {
		if tok.IsText {
			out = append(out, tok.Remaining())
		}
	}
	return out
}

// suggestCompletion runs a completion.Session over the command as typed up
// to (but excluding) the `--comp`/`?` trigger token, rendering candidates
// as one name-per-line text listing (spec.md Non-goal on styled output
// applies here too — this is data, not a rendered page).
func (an *Analyser) suggestCompletion(typedSoFar []string) string {
	partial := strings.Join(typedSoFar, " ")
	if partial != "" {
		partial += " "
	}
	suggestions := completion.New(an.Alconna).Available(partial)
	if len(suggestions) == 0 {
		return "no completions"
	}
	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = s.Text
	}
	return strings.Join(names, "\n")
}

// tryBuiltin checks whether the token at av's cursor names an enabled
// built-in option; if so it runs the action, records its output on arp,
// drains the remaining input (built-ins terminate body match, spec.md
// §4.4 step 5), and reports true.
func (an *Analyser) tryBuiltin(av *argv.Argv, sk sink, meta node.Meta) bool {
	tok, ok := av.Peek()
	if !ok || !tok.IsText {
		return false
	}
	kind, isBuiltin := builtinNames[tok.Remaining()]
	if !isBuiltin || meta.DisableBuiltin[kind] {
		return false
	}
	arp, ok := sk.(*result.Arparma)
	if !ok {
		return false
	}
	typedSoFar := collectTexts(av.Consumed())
	av.Next()
	remaining := collectRemainingTexts(av)

	switch kind {
	case node.BuiltinHelp:
		arp.BuiltinOutput = renderHelp(an.Alconna, an.I18n)
	case node.BuiltinShortcut:
		arp.BuiltinOutput = registerShortcutFromTokens(an.Shortcuts, an.Alconna.ID(), remaining)
	case node.BuiltinCompletion:
		arp.BuiltinOutput = an.suggestCompletion(typedSoFar)
	}
	arp.BuiltinKind = kind
	for !av.Done() {
		av.Next()
	}
	return true
}
