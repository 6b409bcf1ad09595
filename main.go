package main

import "github.com/EvaisaDev/UnityNetcodeWeaver/cmd"

func main() {
	cmd.Execute()
}
