// Command labctl browses the experiment catalog from the terminal.
package main

func main() {
	Execute()
}
