package main

import "fmt"

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	fmt.Printf("%s version %s\n", v.r.program, version)
	if commit != "" {
		fmt.Printf("commit %s", commit)
		if date != "" {
			fmt.Printf(" built %s", date)
		}
		fmt.Println()
	}
	return nil
}
