package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/kjson-format/kjson/eval"
	"github.com/signadot/kjson-format/kjson/format"
)

func TestEnvFunc(t *testing.T) {
	env := eval.Env{}
	for _, a := range []string{"a.b=1", "a.c=[x, y]", "name=kj", "on=true"} {
		if err := envFunc(env, a); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	a, ok := env["a"].(map[string]any)
	if !ok {
		t.Fatalf("a is %T", env["a"])
	}
	if diff := cmp.Diff([]any{"x", "y"}, a["c"]); diff != "" {
		t.Errorf("a.c (-want +got):\n%s", diff)
	}
	if env["name"] != "kj" || env["on"] != true {
		t.Errorf("got %v", env)
	}
	if err := envFunc(env, "name.x=1"); err == nil {
		t.Error("expected error descending into a scalar")
	}
	if err := envFunc(env, "novalue"); err == nil {
		t.Error("expected usage error")
	}
}

func TestIsHex(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"41010161", true},
		{"4101 0161", false},
		{"abc", false},
		{"", false},
		{"00ff\n", true},
		{"00ff\r\n", true},
		{" 00ff", false},
		{"\x201" + strings.Repeat("a", 49), false},
		{"\x20\x04abcd", false},
	}
	for _, tt := range tests {
		if got := isHex([]byte(tt.in)); got != tt.want {
			t.Errorf("isHex(%q) = %t", tt.in, got)
		}
	}
}

func TestDocs(t *testing.T) {
	cfg := &MainConfig{}
	docs, err := parseDocs(cfg, []byte("{a: 1}\n---\n[2n, null]"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs", len(docs))
	}
	var buf bytes.Buffer
	if err := writeDocs(cfg, &buf, docs); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{a: 1}\n---\n[2n, null]\n" {
		t.Errorf("got %q", got)
	}

	j := format.JSONFormat
	cfg.OutFormat = &j
	buf.Reset()
	if err := writeDocs(cfg, &buf, docs[1:]); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[2, null]\n" {
		t.Errorf("got %q", got)
	}

	b := format.KJSONBFormat
	cfg.OutFormat = &b
	if err := writeDocs(cfg, &buf, docs); err == nil {
		t.Error("expected error writing 2 documents as kjsonb")
	}
	buf.Reset()
	if err := writeDocs(cfg, &buf, docs[:1]); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x41, 1, 1, 'a', 0x10, 1}, buf.Bytes()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	cfg.InFormat = &b
	back, err := parseDocs(cfg, buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0].Get("a").Number != 1 {
		t.Errorf("got %v", back)
	}
}
