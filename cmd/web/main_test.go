package main

import (
	"strings"
	"testing"
)

func TestRenderPage(t *testing.T) {
	page := renderPage("play.example.com")
	if strings.Contains(page, "{{.SSHHost}}") {
		t.Error("placeholder left in page")
	}
	if !strings.Contains(page, "ssh -t play.example.com") {
		t.Error("ssh command missing from page")
	}
}
