/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"context"
	"errors"
	"fmt"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/couch"
	"github.com/jt05610/modelrepair/lola"
	pf "github.com/jt05610/modelrepair/petrifile"
	_ "github.com/jt05610/modelrepair/petrifile/json"
	_ "github.com/jt05610/modelrepair/petrifile/yaml"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const couchScheme = "couch://"

const netDB = "nets"

var markingFlag string

func openStore(ctx context.Context) (*couch.Store, error) {
	if config == nil || config.Couch == nil {
		return nil, errors.New("COUCHDB_USER, COUCHDB_PASSWORD, COUCHDB_HOST and COUCHDB_PORT must be set")
	}
	return couch.Open(ctx, config.Couch.URI(), netDB, couch.WithLogger(logger))
}

// loadNet reads the net at path. LoLA files also carry a marking, other
// formats return a nil one.
func loadNet(ctx context.Context, path string) (*petri.Net, petri.Marking, error) {
	if path == "" {
		return nil, nil, errors.New("no input file, use --input")
	}
	opts := []petri.Option{petri.WithLogger(logger)}
	if name, ok := strings.CutPrefix(path, couchScheme); ok {
		store, err := openStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer func() {
			_ = store.Close()
		}()
		n, err := store.Load(ctx, name, opts...)
		return n, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if strings.EqualFold(filepath.Ext(path), ".lola") {
		return lola.Read(f, append(opts, petri.WithName(netName(path)))...)
	}
	s, err := pf.ForPath(path)
	if err != nil {
		return nil, nil, err
	}
	n, err := s.Load(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	if n.Name == "" {
		n.Name = netName(path)
	}
	return n, nil, nil
}

func netName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseMarking reads "place=n,place=n". Places left out hold no tokens.
func parseMarking(s string) (petri.Marking, error) {
	m := make(petri.Marking)
	if strings.TrimSpace(s) == "" {
		return m, nil
	}
	for _, pair := range strings.Split(s, ",") {
		place, count, ok := strings.Cut(pair, "=")
		place = strings.TrimSpace(place)
		if !ok || place == "" {
			return nil, fmt.Errorf("%w: marking entry %q is not place=count", petri.ErrDomain, pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, fmt.Errorf("%w: token count for %q: %w", petri.ErrDomain, place, err)
		}
		m[place] = n
	}
	return m, nil
}

// initialMarking prefers --marking over the marking stored in the file.
func initialMarking(n *petri.Net, stored petri.Marking) (petri.Marking, error) {
	if markingFlag == "" && stored != nil {
		return n.Complete(stored)
	}
	m, err := parseMarking(markingFlag)
	if err != nil {
		return nil, err
	}
	return n.Complete(m)
}

func load(ctx context.Context) (*petri.Net, petri.Marking, error) {
	n, stored, err := loadNet(ctx, inputFile)
	if err != nil {
		return nil, nil, err
	}
	m, err := initialMarking(n, stored)
	if err != nil {
		return nil, nil, err
	}
	return n, m, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&markingFlag, "marking", "m", "", "initial marking as place=n,... (overrides the marking of a LoLA file)")
}
