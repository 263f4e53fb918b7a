// Copyright 2025 AniBridge Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// providerctl inspects the provider registry: it loads extension-point
// manifests from a directory and lists every provider available to the
// process, including the in-tree plugins compiled into this binary.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/anibridge/anibridge-providers/pkg/extension"
	"github.com/anibridge/anibridge-providers/pkg/logger"
	"github.com/anibridge/anibridge-providers/pkg/refs"
	"github.com/anibridge/anibridge-providers/pkg/registry"

	_ "github.com/anibridge/anibridge-providers/plugins/memory"
)

func main() {
	manifestDir := flag.String("manifests", "", "directory of extension-point manifests to load")
	group := flag.String("group", extension.DefaultGroup, "extension-point group to scan")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.Default()
	log.SetLevel(*logLevel)

	if *manifestDir != "" {
		loader := extension.NewLoader(registry.Global(), refs.New())
		if err := loader.Load(extension.NewDirSource(*manifestDir), *group); err != nil {
			log.WithError(err).Fatal("Failed to load extension manifests")
		}
	}

	descriptors := registry.Global().Available()
	sort.Slice(descriptors, func(i, j int) bool {
		if descriptors[i].Kind != descriptors[j].Kind {
			return descriptors[i].Kind < descriptors[j].Kind
		}
		return descriptors[i].Namespace < descriptors[j].Namespace
	})

	if len(descriptors) == 0 {
		fmt.Println("no providers registered")
		os.Exit(0)
	}

	for _, d := range descriptors {
		fmt.Printf("%-10s %s\n", d.Kind, d.Namespace)
	}
}
