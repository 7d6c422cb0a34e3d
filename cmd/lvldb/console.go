// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/peterh/liner"
	lua "github.com/yuin/gopher-lua"
)

const (
	defaultPrompt      = "> "
	continuationPrompt = ">> "
)

var (
	onlyWhitespace = regexp.MustCompile(`^\s*$`)
	exit           = regexp.MustCompile(`^\s*exit\s*;*\s*$`)
)

// console is an interactive Lua prompt.
type console struct {
	L        *lua.LState
	printer  io.Writer
	histPath string
}

func newConsole(L *lua.LState, printer io.Writer, histPath string) *console {
	return &console{L: L, printer: printer, histPath: histPath}
}

// incomplete reports whether err is a syntax error caused by input that ends
// in the middle of a statement.
func incomplete(err error) bool {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) || apiErr.Type != lua.ApiErrorSyntax {
		return false
	}
	return strings.Contains(apiErr.Object.String(), "EOF")
}

// evaluate runs input and prints the values it returns.  Input is first
// tried as an expression so "db:get('k')" prints its result.  It returns
// false when input is an unfinished statement and more lines are needed.
func (c *console) evaluate(input string) (bool, error) {
	fn, err := c.L.LoadString("return " + input)
	if err != nil {
		fn, err = c.L.LoadString(input)
	}
	if err != nil {
		if incomplete(err) {
			return false, nil
		}
		return true, err
	}

	base := c.L.GetTop()
	defer c.L.SetTop(base)
	c.L.Push(fn)
	if err := c.L.PCall(0, lua.MultRet, nil); err != nil {
		return true, err
	}

	var results []string
	for i := base + 1; i <= c.L.GetTop(); i++ {
		results = append(results, c.L.ToStringMeta(c.L.Get(i)).String())
	}
	if len(results) > 0 {
		fmt.Fprintln(c.printer, strings.Join(results, "\t"))
	}
	return true, nil
}

// Interactive reads statements until the input ends or "exit" is entered.
func (c *console) Interactive() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(c.histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer c.saveHistory(line)

	prompt, input := defaultPrompt, ""
	for {
		text, err := line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			prompt, input = defaultPrompt, ""
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(c.printer)
			return nil
		case err != nil:
			return err
		}

		if input == "" {
			if exit.MatchString(text) {
				return nil
			}
			if onlyWhitespace.MatchString(text) {
				continue
			}
		}
		input += text + "\n"

		done, err := c.evaluate(input)
		if !done {
			prompt = continuationPrompt
			continue
		}
		line.AppendHistory(strings.TrimSpace(input))
		if err != nil {
			fmt.Fprintln(c.printer, err)
		}
		prompt, input = defaultPrompt, ""
	}
}

func (c *console) saveHistory(line *liner.State) {
	f, err := os.Create(c.histPath)
	if err != nil {
		log.Warnf("Unable to save console history: %v", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		log.Warnf("Unable to save console history: %v", err)
	}
}
