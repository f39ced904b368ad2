package cli_test

import (
	"testing"

	"github.com/guojun21/wetype-hotwords/internal/cli"
	"github.com/guojun21/wetype-hotwords/internal/hotword"
)

func Test_Delete_Removes_Matching_Hotwords(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Seed(hotword.List{
		{ID: "1", Key: "brb", Text: "be right back"},
		{ID: "2", Key: "addr", Text: "123 Example Street"},
	})

	stdout := c.MustRun("delete", "brb", "--no-restart")

	cli.AssertContains(t, stdout, "deleted 1 hotword(s)")

	written := c.Written()
	if got, want := len(written), 1; got != want {
		t.Fatalf("len(written)=%d, want=%d", got, want)
	}

	if got, want := written[0].Key, "addr"; got != want {
		t.Errorf("written[0].Key=%q, want=%q", got, want)
	}
}

func Test_Delete_Removes_All_Duplicates(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Seed(hotword.List{
		{ID: "1", Key: "sig", Text: "first"},
		{ID: "2", Key: "keep", Text: "kept"},
		{ID: "3", Key: "sig", Text: "second"},
	})

	stdout := c.MustRun("delete", "sig", "--no-restart")

	cli.AssertContains(t, stdout, "deleted 2 hotword(s)")

	written := c.Written()
	if got, want := len(written), 1; got != want {
		t.Fatalf("len(written)=%d, want=%d", got, want)
	}
}

func Test_Delete_Strips_Stored_Key_Before_Comparing(t *testing.T) {
	t.Parallel()

	// The stored trigger carries trailing whitespace; the query is the
	// bare word and must still match. The reverse does not hold: the
	// query is compared literally.
	c := cli.NewCLI(t)
	c.Seed(hotword.List{{ID: "1", Key: "foo ", Text: "padded trigger"}})

	stdout := c.MustRun("delete", "foo", "--no-restart")

	cli.AssertContains(t, stdout, "deleted 1 hotword(s)")

	if got, want := len(c.Written()), 0; got != want {
		t.Errorf("len(written)=%d, want=%d", got, want)
	}
}

func Test_Delete_Query_Is_Not_Stripped(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Seed(hotword.List{{ID: "1", Key: "foo", Text: "text"}})

	stdout := c.MustRun("delete", "foo ", "--no-restart")

	cli.AssertContains(t, stdout, `no hotword with trigger "foo "`)

	if got, want := len(c.Written()), 1; got != want {
		t.Errorf("len(written)=%d, want=%d", got, want)
	}
}

func Test_Delete_No_Match_Is_Not_An_Error(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Seed(hotword.List{{ID: "1", Key: "brb", Text: "be right back"}})

	stdout := c.MustRun("delete", "nope", "--no-restart")

	cli.AssertContains(t, stdout, `no hotword with trigger "nope"`)

	// No write happens for a no-op delete.
	if got, want := len(c.Written()), 1; got != want {
		t.Errorf("len(written)=%d, want=%d", got, want)
	}
}

func Test_Delete_When_Store_File_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("delete", "anything", "--no-restart")

	cli.AssertContains(t, stdout, "no hotword data found")
}

func Test_Delete_Missing_Argument(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("delete")

	cli.AssertContains(t, stderr, "delete requires <key>")
}
