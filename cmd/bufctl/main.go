// Command bufctl reads and writes primitive values inside binary files.
package main

func main() {
	execute()
}
