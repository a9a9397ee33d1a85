// Package main is the entry point for the refmetrics CLI tool, which cleans
// EPL match CSVs and builds referee/team discipline datasets for clustering.
package main

import "github.com/refwatch/refmetrics/cmd"

func main() {
	cmd.Execute()
}
