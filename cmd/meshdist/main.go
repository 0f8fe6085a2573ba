// Command meshdist reports the closest vertex pairs of a scene file.
package main

import "github.com/hupe1980/meshdist/cmd/meshdist/cmd"

func main() {
	cmd.Execute()
}
