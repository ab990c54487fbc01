package initialize

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/types"
)

// Questions asked by an interactive init, exported so tests can script answers.
const (
	QuestionPublic      = "Do you want to make your package public? Questions are on authors, license, description"
	QuestionMore        = "Do you want more questions to customise your package? Questions are on repository url, homepage url, keywords, compiler version, excluded files"
	QuestionTemplate    = "Do you want to create a template?"
	QuestionPopulate    = "Do you want to populate your package? Files like the entrypoint and README.md will be created"
	QuestionName        = "Name"
	QuestionVersion     = "Version"
	QuestionEntrypoint  = "Entrypoint"
	QuestionAuthors     = "Authors (comma separated)"
	QuestionLicense     = "License"
	QuestionDescription = "Description"
	QuestionRepository  = "URL of the repository"
	QuestionHomepage    = "Homepage"
	QuestionKeywords    = "Keywords (comma separated)"
	QuestionCompiler    = "Minimum compiler version"
	QuestionExclude     = "Exclude (comma separated)"
	QuestionTplPath     = "Template directory"
	QuestionTplEntry    = "Template entrypoint"
	QuestionTplThumb    = "Template thumbnail"
)

var yesNo = []string{"yes", "no"}

func yes(p types.Prompter, question string) (bool, error) {
	answer, err := p.Select(question, yesNo, "no")
	return answer == "yes", err
}

// ask fills opts from the prompter. Existing values are offered as defaults.
func ask(p types.Prompter, opts *InitOptions) error {
	public, err := yes(p, QuestionPublic)
	if err != nil {
		return err
	}
	more, err := yes(p, QuestionMore)
	if err != nil {
		return err
	}
	template, err := yes(p, QuestionTemplate)
	if err != nil {
		return err
	}
	populate, err := yes(p, QuestionPopulate)
	if err != nil {
		return err
	}
	opts.Populate = opts.Populate || populate

	if opts.Name, err = p.Input(QuestionName, opts.Name); err != nil {
		return err
	}
	if opts.Name == "" {
		return errors.New(errors.ErrInvalidInput, "a package name is required")
	}
	if opts.Version, err = p.Input(QuestionVersion, opts.Version); err != nil {
		return err
	}
	if _, err := semver.StrictNewVersion(opts.Version); err != nil {
		return errors.Wrapf(err, errors.ErrSemver, "a correct version must be typed (check SemVer): %q", opts.Version)
	}
	if opts.Entrypoint, err = p.Input(QuestionEntrypoint, opts.Entrypoint); err != nil {
		return err
	}

	if public {
		authors, err := p.Input(QuestionAuthors, strings.Join(opts.Authors, ","))
		if err != nil {
			return err
		}
		opts.Authors = split(authors)

		license := opts.License
		if license == "" {
			license = DefaultLicense
		}
		if opts.License, err = p.Input(QuestionLicense, license); err != nil {
			return err
		}
		if opts.Description, err = p.Input(QuestionDescription, opts.Description); err != nil {
			return err
		}
	}

	if more {
		if opts.Repository, err = p.Input(QuestionRepository, opts.Repository); err != nil {
			return err
		}
		if opts.Homepage, err = p.Input(QuestionHomepage, opts.Homepage); err != nil {
			return err
		}
		keywords, err := p.Input(QuestionKeywords, strings.Join(opts.Keywords, ","))
		if err != nil {
			return err
		}
		opts.Keywords = split(keywords)
		if opts.Compiler, err = p.Input(QuestionCompiler, opts.Compiler); err != nil {
			return err
		}
		exclude, err := p.Input(QuestionExclude, strings.Join(opts.Exclude, ","))
		if err != nil {
			return err
		}
		opts.Exclude = split(exclude)
	}

	if template {
		t := opts.Template
		if t == nil {
			t = &TemplateOptions{Path: "template", Entrypoint: DefaultEntrypoint}
		}
		if t.Path, err = p.Input(QuestionTplPath, t.Path); err != nil {
			return err
		}
		if t.Entrypoint, err = p.Input(QuestionTplEntry, t.Entrypoint); err != nil {
			return err
		}
		if t.Thumbnail, err = p.Input(QuestionTplThumb, t.Thumbnail); err != nil {
			return err
		}
		opts.Template = t
	}
	return nil
}
