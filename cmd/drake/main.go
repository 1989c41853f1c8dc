// Command drake plays, replays and serves drag-and-drop boards.
package main

func main() {
	Execute()
}
