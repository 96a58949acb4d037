package main

import (
	"github.com/kitbid/KitBidBackend/cmd"
)

func main() {
	cmd.Execute()
}
