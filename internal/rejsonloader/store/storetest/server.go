// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

// Package storetest provides an in-process server that speaks enough of the
// Redis protocol to exercise the store without a real Redis.
package storetest

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Server answers PING, SELECT, JSON.SET and JSON.GET over RESP2. Any other
// command, including HELLO, gets an error reply, which go-redis tolerates
// during connection setup.
type Server struct {
	listener net.Listener

	mu       sync.Mutex
	docs     map[string]map[string]string
	commands []string
	setError string
	hang     map[string]bool
	db       map[net.Conn]string
}

// NewServer starts a server on a random loopback port. It is closed when
// the test finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	s := &Server{
		listener: ln,
		docs:     make(map[string]map[string]string),
		hang:     make(map[string]bool),
		db:       make(map[net.Conn]string),
	}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })

	return s
}

// Host returns the listening IP address.
func (s *Server) Host() string {
	return s.listener.Addr().(*net.TCPAddr).IP.String()
}

// Port returns the listening TCP port.
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// FailSet makes every following JSON.SET reply with the given error message.
func (s *Server) FailSet(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setError = message
}

// Hang makes the server swallow every following command with the given name
// without replying. The connection stays open until the client drops it.
func (s *Server) Hang(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hang[strings.ToUpper(name)] = true
}

// Document returns the JSON text stored under key in database db.
func (s *Server) Document(db int, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[strconv.Itoa(db)][key]
	return doc, ok
}

// Commands returns the upper-cased names of all commands received so far.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Received reports whether a command with the given name was received.
func (s *Server) Received(name string) bool {
	for _, c := range s.Commands() {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	defer func() {
		s.mu.Lock()
		delete(s.db, conn)
		s.mu.Unlock()
	}()

	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		reply, ok := s.reply(conn, args)
		if !ok {
			_, _ = io.Copy(io.Discard, conn)
			return
		}
		if _, err := io.WriteString(conn, reply); err != nil {
			return
		}
	}
}

// reply returns false when the command must go unanswered.
func (s *Server) reply(conn net.Conn, args []string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(args) == 0 {
		return "-ERR empty command\r\n", true
	}

	name := strings.ToUpper(args[0])
	s.commands = append(s.commands, name)
	if s.hang[name] {
		return "", false
	}

	return s.dispatch(conn, name, args), true
}

func (s *Server) dispatch(conn net.Conn, name string, args []string) string {
	db, ok := s.db[conn]
	if !ok {
		db = "0"
	}

	switch name {
	case "PING":
		return "+PONG\r\n"
	case "SELECT":
		if len(args) != 2 {
			return "-ERR wrong number of arguments for 'select' command\r\n"
		}
		s.db[conn] = args[1]
		return "+OK\r\n"
	case "JSON.SET":
		if s.setError != "" {
			return "-" + s.setError + "\r\n"
		}
		if len(args) != 4 {
			return "-ERR wrong number of arguments for 'json.set' command\r\n"
		}
		if args[2] != "." && args[2] != "$" {
			return "-ERR new objects must be created at the root\r\n"
		}
		if s.docs[db] == nil {
			s.docs[db] = make(map[string]string)
		}
		s.docs[db][args[1]] = args[3]
		return "+OK\r\n"
	case "JSON.GET":
		if len(args) < 2 {
			return "-ERR wrong number of arguments for 'json.get' command\r\n"
		}
		doc, ok := s.docs[db][args[1]]
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(doc), doc)
	}

	return fmt.Sprintf("-ERR unknown command '%s'\r\n", args[0])
}

// readCommand reads one RESP array of bulk strings.
func readCommand(r *bufio.Reader) ([]string, error) {
	n, err := readLength(r, '*')
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		size, err := readLength(r, '$')
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}

	return args, nil
}

func readLength(r *bufio.Reader, prefix byte) (int, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 2 || line[0] != prefix {
		return 0, fmt.Errorf("unexpected RESP line %q", line)
	}
	return strconv.Atoi(line[1:])
}
