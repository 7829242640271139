package main
import (
	"os"
	"fmt"
)

const (
	ConfigFilename = "steglsb.yaml"
)

func main() {

	if len( os.Args ) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "hide":
		err = Hide( args )
	case "reveal":
		err = Reveal( args )
	case "capacity":
		err = ShowCapacity( args )
	case "genconfig":
		err = GenConfig( args )
	default:
		help()
		return
	}
	if err != nil {
		fatal( os.Args[1] + ":", err )
	}
}

func fatal( args ...any ) {
	fmt.Fprintln( os.Stderr, args... )
	os.Exit(1)
}

func help() {
	line := `Usage: ./steglsb <command> [arguments]

The following commands are supported:
	hide		hide a file or a message in a PNG or BMP image
	reveal		extract hidden data from an image
	capacity	show how many bytes an image can carry
	genconfig	write default configuration

Common arguments:
	-c <file>	configuration file (default steglsb.yaml, if present)
	-mode <1|2>	low bits per color channel
	-alpha		use alpha channel for data as well (PNG only)
	-raw		no length header; reveal then needs -n

Run './steglsb <command> -h' to see all arguments of a command.
Images must stay in a lossless format: converting them to JPEG destroys the data.
`

	fmt.Printf("%s", line)
}
