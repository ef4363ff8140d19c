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

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/innovationmech/rejson-loader/internal/rejsonloader/cmd"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/loader"
	"github.com/innovationmech/rejson-loader/pkg/logger"
)

// Set via -ldflags "-X main.version=... -X main.buildTime=... -X main.gitCommit=...".
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

// run executes the root command with os.Args and returns the exit status.
func run() int {
	logger.InitLogger()
	defer func() {
		// Sync on stderr fails on some platforms; nothing to do about it.
		_ = logger.GetLogger().Sync()
	}()

	command := cmd.NewRootLoaderCommand()
	command.Version = fmt.Sprintf("%s (built %s, commit %s)", version, buildTime, gitCommit)
	command.SetArgs(os.Args[1:])

	if err := command.Execute(); err != nil {
		logger.GetLogger().Debug("Command failed", zap.String("kind", loader.CodeOf(err)), zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	return 0
}
