// Command wellbeingctl inspects and edits usage records and feather ledgers
// directly against the configured store. It is meant for support and debugging.
package main

func main() {
	Execute()
}
