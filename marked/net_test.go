package marked_test

import (
	"fmt"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/marked"
	"testing"
)

func door() *petri.Net {
	n := petri.New()
	for _, p := range []string{"closed", "opened"} {
		_ = n.AddPlace(p)
	}
	for _, t := range []string{"open", "close"} {
		_ = n.AddTransition(t)
	}
	_ = n.SetInputFlow("closed", "open", 1)
	_ = n.SetOutputFlow("opened", "open", 1)
	_ = n.SetInputFlow("opened", "close", 1)
	_ = n.SetOutputFlow("closed", "close", 1)
	return n
}

func ExampleNet() {
	mn, err := marked.New(door(), petri.Marking{"closed": 1})
	if err != nil {
		panic(err)
	}
	seq := []string{"open", "open", "close", "close"}
	for _, t := range seq {
		fmt.Print("trying to fire ", t)
		if !mn.Enabled(t) {
			fmt.Printf("\n  error: %s is not enabled\n", t)
			continue
		}
		fmt.Printf("\n  before: %s\n", mn.Marking())
		err := mn.Fire(t)
		if err != nil {
			fmt.Println(err)
		}
		fmt.Printf("  after: %s\n", mn.Marking())
	}
	// Output:
	// trying to fire open
	//   before: {closed: 1, opened: 0}
	//   after: {closed: 0, opened: 1}
	// trying to fire open
	//   error: open is not enabled
	// trying to fire close
	//   before: {closed: 0, opened: 1}
	//   after: {closed: 1, opened: 0}
	// trying to fire close
	//   error: close is not enabled
}

func TestNet_Run(t *testing.T) {
	mn, err := marked.New(door(), petri.Marking{"closed": 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := mn.Run("open", "close", "open"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mn.Mark("opened") != 1 {
		t.Fatalf("expected opened to hold 1 token, got %d", mn.Mark("opened"))
	}
	if got := mn.Available(); len(got) != 1 || got[0] != "close" {
		t.Fatalf("expected only close to be available, got %v", got)
	}
	err = mn.Run("close", "close")
	if err == nil {
		t.Fatal("expected an error firing close twice")
	}
	if mn.Mark("closed") != 1 {
		t.Fatalf("expected the marking to stop at the failing step, got %s", mn.Marking())
	}
}

func TestNew_RejectsUnknownPlace(t *testing.T) {
	if _, err := marked.New(door(), petri.Marking{"ajar": 1}); err == nil {
		t.Fatal("expected an error for an unknown place")
	}
}
