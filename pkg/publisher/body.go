package publisher

// SubmissionBody is the checklist expected by typst/packages reviewers.
const SubmissionBody = `I am submitting
- [ ] a new package
- [ ] an update for a package


Description: Explain what the package does and why it's useful.

I have read and followed the submission guidelines and, in particular, I
- [ ] selected a name that isn't the most obvious or canonical name for what the package does
- [ ] added a ` + "`typst.toml`" + ` file with all required keys
- [ ] added a ` + "`README.md`" + ` with documentation for my package
- [ ] have chosen a license and added a ` + "`LICENSE`" + ` file or linked one in my ` + "`README.md`" + `
- [ ] tested my package locally on my system and it worked
- [ ] ` + "`exclude`" + `d PDFs or README images, if any, but not the LICENSE

- [ ] ensured that my package is licensed such that users can use and distribute the contents of its template directory without restriction, after modifying them through normal use.
`
