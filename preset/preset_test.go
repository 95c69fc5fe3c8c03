package preset

import (
  "sort"
  "strings"
  "testing"

  "github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
  tint, ok := Lookup("sepia")
  if !ok { t.Fatal("Lookup(sepia) not found") }
  if tint != (Tint{232, 200, 160}) { t.Errorf("sepia = %v", tint) }

  // names are case insensitive and trimmed
  tint2, ok := Lookup("  SEPIA ")
  if !ok || tint2 != tint { t.Errorf("Lookup(\"  SEPIA \") = (%v, %v)", tint2, ok) }

  // unknown names resolve to the default preset
  tint3, ok := Lookup("nosuchtint")
  if ok { t.Error("Lookup(nosuchtint) reported ok") }
  if tint3 != tint { t.Errorf("unknown tint = %v, want default %v", tint3, tint) }
}

func TestNames(t *testing.T) {
  names := Names()
  if !sort.StringsAreSorted(names) { t.Errorf("Names() not sorted: %v", names) }
  want := []string{"blue", "green", "lavender", "mono", "rose", "sepia"}
  if diff := cmp.Diff(want, names); diff != "" { t.Errorf("Names() mismatch (-want +got):\n%s", diff) }
}

func TestParse(t *testing.T) {
  tint, err := Parse("#4080c0")
  if err != nil { t.Fatalf("Parse: %v", err) }
  if tint != (Tint{0x40, 0x80, 0xc0}) { t.Errorf("Parse(#4080c0) = %v", tint) }

  for _, s := range []string{"", "4080c0", "#4080", "#gghhii", "#4080c0ff"} {
    if _, err := Parse(s); err == nil { t.Errorf("Parse(%q) succeeded, want error", s) }
  }
}

func TestImport(t *testing.T) {
  src := "# user tints\n" +
         "\n" +
         "dusk = #403050\n" +
         "Ember=#c04020\n"
  tints, err := Import(strings.NewReader(src))
  if err != nil { t.Fatalf("Import: %v", err) }

  want := map[string]Tint{
    "dusk":  {0x40, 0x30, 0x50},
    "ember": {0xc0, 0x40, 0x20},
  }
  if diff := cmp.Diff(want, tints); diff != "" { t.Errorf("Import mismatch (-want +got):\n%s", diff) }
}

func TestImportErrors(t *testing.T) {
  cases := []string{
    "no equals sign",
    "= #403050",
    "dusk = notacolor",
  }
  for _, src := range cases {
    if _, err := Import(strings.NewReader(src)); err == nil { t.Errorf("Import(%q) succeeded, want error", src) }
  }
  if _, err := Import(nil); err == nil { t.Error("Import(nil) succeeded, want error") }
}
