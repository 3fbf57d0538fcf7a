// paramctl is a small CLI for the scopecam daemon: inspect the control
// surface, push edits, toggle auto modes, reset, and watch the live
// state feed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/gorilla/websocket"

	"github.com/inspectra/go-scopecam/internal/httpc"
	"github.com/inspectra/go-scopecam/pkg/engine"
	"github.com/inspectra/go-scopecam/pkg/web"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: paramctl [-addr host:port] <command> [args]

Commands:
  list                     show all controls
  get <name>               show one control
  set <name> <value>       push a value edit
  auto <name> on|off       toggle an auto mode
  cycle                    advance the exposure preset cycle
  reset                    reset parameters to defaults
  mode <none|single|stereo>  switch operating mode
  pull                     trigger an immediate pull cycle
  watch                    stream state updates`)
	os.Exit(2)
}

func main() {
	addr := flag.String("addr", "127.0.0.1:8840", "Daemon address")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	base := "http://" + *addr
	var err error
	switch args[0] {
	case "list":
		err = cmdList(base)
	case "get":
		if len(args) != 2 {
			usage()
		}
		err = cmdGet(base, args[1])
	case "set":
		if len(args) != 3 {
			usage()
		}
		err = cmdSet(base, args[1], args[2])
	case "auto":
		if len(args) != 3 || (args[2] != "on" && args[2] != "off") {
			usage()
		}
		err = cmdAuto(base, args[1], args[2] == "on")
	case "cycle":
		err = cmdPost(base+"/api/exposure/cycle", nil)
	case "reset":
		err = cmdPost(base+"/api/reset", nil)
	case "mode":
		if len(args) != 2 {
			usage()
		}
		err = cmdPost(base+"/api/mode", web.SetModeRequest{Mode: args[1]})
	case "pull":
		err = cmdPost(base+"/api/pull", nil)
	case "watch":
		err = cmdWatch(*addr)
	default:
		usage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "paramctl: %v\n", err)
		os.Exit(1)
	}
}

func fetchSnapshot(base string) (engine.Snapshot, error) {
	var snap engine.Snapshot
	resp, err := httpc.Get(base + "/api/params")
	if err != nil {
		return snap, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return snap, fmt.Errorf("daemon returned %s", resp.Status)
	}
	err = json.NewDecoder(resp.Body).Decode(&snap)
	return snap, err
}

func printSnapshot(snap engine.Snapshot) {
	fmt.Printf("mode: %s\n", snap.Mode)
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tRANGE\tSTEP\tENABLED\tVISIBLE")
	for _, c := range snap.Controls {
		fmt.Fprintf(w, "%s\t%d\t[%d, %d]\t%d\t%v\t%v\n",
			c.Name, c.Value, c.Min, c.Max, c.Step, c.Enabled, c.Visible)
	}
	w.Flush()
}

func cmdList(base string) error {
	snap, err := fetchSnapshot(base)
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}

func cmdGet(base, name string) error {
	snap, err := fetchSnapshot(base)
	if err != nil {
		return err
	}
	c, ok := snap.Control(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	fmt.Printf("%s = %d  range [%d, %d] step %d  enabled=%v visible=%v\n",
		c.Name, c.Value, c.Min, c.Max, c.Step, c.Enabled, c.Visible)
	return nil
}

func cmdSet(base, name, raw string) error {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", raw)
	}
	return cmdPost(base+"/api/params/"+name, web.SetParamRequest{Value: &value})
}

func cmdAuto(base, name string, auto bool) error {
	return cmdPost(base+"/api/params/"+name, web.SetParamRequest{Auto: &auto})
}

func cmdPost(url string, body any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}
	resp, err := httpc.Post(url, "application/json", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var e web.ErrorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, e.Error)
		}
		return fmt.Errorf("daemon returned %s", resp.Status)
	}
	fmt.Println(string(data))
	return nil
}

// cmdWatch streams state events until interrupted.
func cmdWatch(addr string) error {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/params", nil)
	if err != nil {
		return fmt.Errorf("connecting to state feed: %w", err)
	}
	defer conn.Close()

	fmt.Println("📡 watching parameter state (ctrl-c to stop)")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev web.Event
		if err := json.Unmarshal(data, &ev); err != nil || ev.Type != web.TypeState {
			continue
		}
		var snap engine.Snapshot
		if err := json.Unmarshal(ev.Data, &snap); err != nil {
			continue
		}
		fmt.Println("---")
		printSnapshot(snap)
	}
}
