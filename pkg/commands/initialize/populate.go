package initialize

import (
	"fmt"
	"strings"
	"time"

	"github.com/typst-community/utpm/pkg/manifest"
)

// GeneratedHeader starts every entrypoint written by --populate.
const GeneratedHeader = "// This file is generated by UTPM (https://github.com/typst-community/utpm)"

type generatedFile struct {
	rel     string
	content string
}

func populate(m *manifest.Manifest) []generatedFile {
	p := m.Package
	files := []generatedFile{
		{rel: "README.md", content: "# " + p.Name + "\n"},
	}
	if text, ok := LicenseText(p.License, p.Authors, time.Now().Year()); ok {
		files = append(files, generatedFile{rel: "LICENSE", content: text})
	}
	files = append(files,
		generatedFile{
			rel:     "examples/tests.typ",
			content: fmt.Sprintf("#import \"@local/%s:%s\": *\nDo...\n", p.Name, p.Version),
		},
		generatedFile{rel: p.Entrypoint, content: GeneratedHeader + "\n"},
	)
	if m.Template != nil {
		files = append(files, generatedFile{
			rel:     m.Template.Path + "/" + m.Template.Entrypoint,
			content: fmt.Sprintf("#import \"@local/%s:%s\": *\n", p.Name, p.Version),
		})
	}
	return files
}

// LicenseText returns the text of the licenses utpm ships. ok is false for any
// other SPDX identifier.
func LicenseText(id string, authors []string, year int) (string, bool) {
	holder := strings.Join(authors, ", ")
	if holder == "" {
		holder = "the authors"
	}

	switch strings.ToLower(strings.TrimSpace(id)) {
	case "mit":
		return fmt.Sprintf(mitLicense, year, holder), true
	case "apache-2.0":
		return fmt.Sprintf(apacheNotice, year, holder), true
	case "unlicense":
		return unlicense, true
	default:
		return "", false
	}
}

const mitLicense = `MIT License

Copyright (c) %d %s

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

const apacheNotice = `Copyright %d %s

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
`

const unlicense = `This is free and unencumbered software released into the public domain.

Anyone is free to copy, modify, publish, use, compile, sell, or
distribute this software, either in source code form or as a compiled
binary, for any purpose, commercial or non-commercial, and by any
means.

In jurisdictions that recognize copyright laws, the author or authors
of this software dedicate any and all copyright interest in the
software to the public domain. We make this dedication for the benefit
of the public at large and to the detriment of our heirs and
successors. We intend this dedication to be an overt act of
relinquishment in perpetuity of all present and future rights to this
software under copyright law.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
OTHER DEALINGS IN THE SOFTWARE.

For more information, please refer to <https://unlicense.org>
`
