// camlist prints the V4L2 capture devices on this machine, optionally
// with the formats and frame sizes each one supports.
package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/blackjack/webcam"
)

func main() {
	formats := flag.Bool("formats", false, "also list supported formats and frame sizes")
	flag.Parse()

	devices, err := webcam.ListDevices()
	if err != nil {
		panic(err.Error())
	}
	if len(devices) == 0 {
		fmt.Printf("No valid video devices found in %q\n", webcam.VIDEO4LINUX_DIR)
		return
	}

	paths := make([]string, 0, len(devices))
	for path := range devices {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fmt.Println("Video devices found:")
	for _, path := range paths {
		fmt.Printf("  %q located in %s\n", devices[path], path)
		if *formats {
			printFormats(path)
		}
	}
}

func printFormats(path string) {
	cam, err := webcam.Open(path)
	if err != nil {
		fmt.Printf("    cannot open: %s\n", err.Error())
		return
	}
	defer cam.Close()

	for format, name := range cam.GetSupportedFormats() {
		fmt.Printf("    %s:", name)
		for _, size := range cam.GetSupportedFrameSizes(format) {
			fmt.Printf(" %s", size.GetString())
		}
		fmt.Println()
	}
}
