package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-trigger/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "send":
		sendNote(os.Args[2:])
	case "watch":
		watchPorts()
	case "encode":
		encodeEvent(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                         - List all MIDI ports")
	fmt.Println("  send <port> [ch note vel]    - Send a test note to a port (name substring)")
	fmt.Println("  watch                        - Poll for port changes")
	fmt.Println("  encode <ch> <note> [vel]     - Print the wire bytes for a note on/off pair")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ins := gomidi.GetInPorts()
		outs := gomidi.GetOutPorts()
		ch <- result{ins: ins, outs: outs}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI backend is hung.")
	}
}

func sendNote(args []string) {
	if len(args) < 1 {
		usage()
		return
	}

	var outPort drivers.Out
	for _, p := range gomidi.GetOutPorts() {
		if containsIgnoreCase(p.String(), args[0]) {
			outPort = p
			break
		}
	}
	if outPort == nil {
		fmt.Printf("No output port matching %q\n", args[0])
		return
	}
	fmt.Printf("Using output: %s\n", outPort.String())

	channel, note, velocity := uint8(1), uint8(60), uint8(127)
	if len(args) > 1 {
		channel = parseChannel(args[1])
	}
	if len(args) > 2 {
		note = parse7(args[2], 60)
	}
	if len(args) > 3 {
		velocity = parse7(args[3], 127)
	}

	send, err := gomidi.SendTo(outPort)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	fmt.Printf("Sending note %d on channel %d...\n", note, channel)
	send(gomidi.NoteOn(channel-1, note, velocity))
	time.Sleep(300 * time.Millisecond)
	send(gomidi.NoteOff(channel-1, note))
	fmt.Println("Done!")
}

func watchPorts() {
	fmt.Println("Polling for port changes every 2 seconds...")
	fmt.Println("Plug/unplug a MIDI interface to test. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		ins := gomidi.GetInPorts()
		outs := gomidi.GetOutPorts()

		var inNames, outNames []string
		for _, p := range ins {
			inNames = append(inNames, p.String())
		}
		for _, p := range outs {
			outNames = append(outNames, p.String())
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Port change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}

func encodeEvent(args []string) {
	if len(args) < 2 {
		usage()
		return
	}
	channel := parseChannel(args[0])
	note := parse7(args[1], 60)
	velocity := uint8(127)
	if len(args) > 2 {
		velocity = parse7(args[2], 127)
	}

	on := midi.NewNoteOn(channel, note, velocity)
	off := midi.NewNoteOff(channel, note, 0)
	fmt.Printf("%s  -> % X\n", on, on.Encode())
	fmt.Printf("%s  -> % X\n", off, off.Encode())
}

func parseChannel(s string) uint8 {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 16 {
		return 1
	}
	return uint8(v)
}

func parse7(s string, def uint8) uint8 {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 127 {
		return def
	}
	return uint8(v)
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
