package main

import "bulkbuddy/cmd/bb"

func main() {
	bb.Execute()
}
