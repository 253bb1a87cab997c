package node

import "github.com/ArcletProject/Alconna/argv"

func testArgv(raw string) *argv.Argv {
	a := argv.New("")
	a.LoadString(raw)
	return a
}
