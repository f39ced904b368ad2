package cli_test

import (
	"strconv"
	"testing"

	"github.com/guojun21/wetype-hotwords/internal/cli"
	"github.com/guojun21/wetype-hotwords/internal/hotword"
)

func Test_Add_To_Empty_Store(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("add", "brb", "be right back", "--no-restart")

	cli.AssertContains(t, stdout, "added hotword: brb")

	written := c.Written()
	if got, want := len(written), 1; got != want {
		t.Fatalf("len(written)=%d, want=%d", got, want)
	}

	if got, want := written[0].Key, "brb"; got != want {
		t.Errorf("Key=%q, want=%q", got, want)
	}

	if got, want := written[0].Text, "be right back"; got != want {
		t.Errorf("Text=%q, want=%q", got, want)
	}

	if _, err := strconv.ParseInt(written[0].ID, 10, 64); err != nil {
		t.Errorf("ID %q is not a decimal millisecond timestamp: %v", written[0].ID, err)
	}
}

func Test_Add_Prepends_To_Existing_List(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Seed(hotword.List{{ID: "1", Key: "old", Text: "old text"}})

	c.MustRun("add", "new", "new text", "--no-restart")

	written := c.Written()
	if got, want := len(written), 2; got != want {
		t.Fatalf("len(written)=%d, want=%d", got, want)
	}

	if got, want := written[0].Key, "new"; got != want {
		t.Errorf("written[0].Key=%q, want=%q", got, want)
	}

	if got, want := written[1].Key, "old"; got != want {
		t.Errorf("written[1].Key=%q, want=%q", got, want)
	}
}

func Test_Add_Permits_Duplicate_Keys(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("add", "sig", "first", "--no-restart")
	c.MustRun("add", "sig", "second", "--no-restart")

	written := c.Written()
	if got, want := len(written), 2; got != want {
		t.Fatalf("len(written)=%d, want=%d", got, want)
	}

	if got, want := written[0].Text, "second"; got != want {
		t.Errorf("written[0].Text=%q, want=%q", got, want)
	}
}

func Test_Add_Missing_Arguments(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("add", "onlykey")

	cli.AssertContains(t, stderr, "add requires <key> and <text>")
}
