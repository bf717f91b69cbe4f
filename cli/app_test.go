package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/lattice/table"
)

const testConfig = `{
	"gridSeparation": 0.1,
	"turningRadius": 0.5,
	"maxLength": 0.6,
	"numberOfHeadings": 8,
	"outputFile": "${LATTICE_TEST_OUT}"
}`

func setup(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "config.json")
	test.That(t, os.WriteFile(cfgPath, []byte(testConfig), 0o600), test.ShouldBeNil)
	t.Setenv("LATTICE_TEST_OUT", filepath.Join(dir, "from_config.json"))
	return dir, cfgPath
}

func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"latticegen"}, args...))
	return out.String(), errOut.String(), err
}

func readDocument(t *testing.T, path string) *table.Document {
	t.Helper()
	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	doc, err := table.Read(f)
	test.That(t, err, test.ShouldBeNil)
	return doc
}

func TestGenerateAction(t *testing.T) {
	dir, cfgPath := setup(t)
	output := filepath.Join(dir, "lattice.json")
	plots := filepath.Join(dir, "plots")

	out, errOut, err := run("generate", "--config", cfgPath, "--output", output, "--plot-dir", plots, "--workers", "2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "primitives to "+output)
	test.That(t, out, test.ShouldContainSubstring, "plots to "+plots)
	test.That(t, errOut, test.ShouldContainSubstring, "generating primitives")
	test.That(t, errOut, test.ShouldNotContainSubstring, "skipping infeasible candidate")

	doc := readDocument(t, output)
	test.That(t, doc.Metadata.NumberOfHeadings, test.ShouldEqual, 8)
	test.That(t, len(doc.Primitives), test.ShouldEqual, doc.Metadata.NumberOfTrajectories)
	test.That(t, len(doc.Primitives), test.ShouldBeGreaterThan, 0)

	entries, err := os.ReadDir(plots)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(entries), test.ShouldEqual, 8)
}

func TestGenerateActionOverrides(t *testing.T) {
	dir, cfgPath := setup(t)

	_, errOut, err := run("--debug", "generate", "-c", cfgPath,
		"--set", "numberOfHeadings=16", "--set", "motionModel=diff", "--set", "maxLength=0.5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "skipping infeasible candidate")

	doc := readDocument(t, filepath.Join(dir, "from_config.json"))
	test.That(t, doc.Metadata.NumberOfHeadings, test.ShouldEqual, 16)
	test.That(t, doc.Metadata.MotionModel, test.ShouldEqual, "diff")
}

func TestGenerateActionErrors(t *testing.T) {
	_, cfgPath := setup(t)

	_, _, err := run("generate")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = run("generate", "--config", filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = run("generate", "--config", cfgPath, "--set", "bogus=1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown config key")

	_, _, err = run("generate", "--config", cfgPath, "--set", "numberOfHeadings=12")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = run("generate", "--config", cfgPath, "--set", "maxLength=0.1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "below start level")
}

func TestHeadingsAction(t *testing.T) {
	out, _, err := run("headings", "--count", "8")
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, len(lines), test.ShouldEqual, 8)
	test.That(t, lines[0], test.ShouldContainSubstring, "-135.0000")
	test.That(t, lines[7], test.ShouldContainSubstring, "180.0000")

	out, _, err = run("headings")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(strings.Split(strings.TrimSpace(out), "\n")), test.ShouldEqual, 16)

	_, _, err = run("headings", "--count", "10")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchemaAction(t *testing.T) {
	out, _, err := run("schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "gridSeparation")
	test.That(t, out, test.ShouldContainSubstring, "numberOfHeadings")
}

func TestSummaryAction(t *testing.T) {
	dir, cfgPath := setup(t)
	output := filepath.Join(dir, "lattice.json")
	logFile := filepath.Join(dir, "latticegen.log")

	_, _, err := run("--log-file", logFile, "generate", "--config", cfgPath, "--output", output)
	test.That(t, err, test.ShouldBeNil)
	logs, err := os.ReadFile(logFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(logs), test.ShouldContainSubstring, "generating primitives")

	out, _, err := run("summary", "--input", output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "PRIMITIVES")
	test.That(t, out, test.ShouldContainSubstring, "TOTAL")
	test.That(t, out, test.ShouldContainSubstring, "-135.00")

	_, _, err = run("summary")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = run("summary", "-i", filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}
