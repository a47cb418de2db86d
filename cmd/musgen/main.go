package main

import (
	"os"
	"reflect"
	"strings"

	"github.com/mmwithiga/tarumbeta/core"
	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/mmwithiga/tarumbeta/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())
	g.AddDefinedType(reflect.TypeFor[core.Source]())
	g.AddDefinedType(reflect.TypeFor[core.MatchStatus]())

	// Unix micro timestamps
	opts := typeops.WithTimeUnit(typeops.Micro)

	// Id, ProfileID, Name, Email, AvatarURL, Location, Instrument, SkillLevel,
	// TeachingLanguage, HourlyRate, Rating, YearsExperience, TotalStudents,
	// Bio, TeachingStyle, AvailableDays, Source, InsertedAt
	fields := make([]structops.SetOption, 0, 18)
	for range 17 {
		fields = append(fields, structops.WithField())
	}
	fields = append(fields, structops.WithField(opts))
	if err = g.AddStruct(reflect.TypeFor[core.Candidate](), fields...); err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.MatchLogEntry](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(opts),
		structops.WithField(opts))
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Bundle](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(opts))
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
