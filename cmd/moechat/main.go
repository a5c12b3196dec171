// Command moechat is a terminal chat client for the MoECatalyst assistant.
package main

import "github.com/moecatalyst/moechat/internal/commands"

func main() {
	commands.Execute()
}
