package main

import "github.com/AimceptionGian/FlexiPlan/cmd"

func main() {
	cmd.Execute()
}
