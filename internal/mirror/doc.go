// Package mirror streams the rendered editor frames to other terminals.
//
// A Hub accepts WebSocket clients and forwards every published frame to
// them. Frames are the exact strings the editor drew, ANSI styling
// included, so a watcher only has to clear its screen and print them.
//
// # Discovery
//
// A running mirror can register itself over multicast DNS as
// "_maptools._tcp". Browse lists the mirrors on the local network segment
// and Watch attaches to one of them.
//
//	sessions, err := mirror.Browse(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, s := range sessions {
//	    fmt.Println(s.Name, s.URL())
//	}
//
// Discovery needs multicast on the interface and UDP port 5353 open.
package mirror
