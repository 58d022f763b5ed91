package output

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/bigFin/glimpse/internal/types"
	"github.com/bigFin/glimpse/internal/utils"
)

const planCommandName = "plan"

// TokenizerSelection describes the tokenizer the run will count with.
type TokenizerSelection struct {
	Kind     types.TokenizerKind `json:"kind"`
	Encoding string              `json:"encoding"`
}

// Plan is the resolved run plan: the authoritative settings record together
// with the projections handed to the scanner and renderer, the tokenizer
// selection, and the destination the output will reach. A nil Tokenizer means
// token counting is disabled for the run.
type Plan struct {
	Version         string              `json:"version"`
	ProfilePath     string              `json:"profilePath"`
	Settings        types.Settings      `json:"settings"`
	Scan            types.ScanRequest   `json:"scan"`
	Render          types.RenderRequest `json:"render"`
	Tokenizer       *TokenizerSelection `json:"tokenizer,omitempty"`
	Destination     DestinationKind     `json:"destination"`
	DestinationPath string              `json:"destinationPath,omitempty"`
}

type planEmitter struct {
	ctx context.Context
	out chan<- Event
}

func newPlanEmitter(ctx context.Context, out chan<- Event) *planEmitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &planEmitter{ctx: ctx, out: out}
}

func (emitter *planEmitter) send(event Event) error {
	if emitter.out == nil {
		return fmt.Errorf("plan stream: event channel is nil")
	}
	event.Version = SchemaVersion
	if event.Command == "" {
		event.Command = planCommandName
	}
	select {
	case <-emitter.ctx.Done():
		return emitter.ctx.Err()
	case emitter.out <- event:
		return nil
	}
}

// StreamPlan emits plan as an ordered event sequence: start, one event per
// section, the assembled document, done.
func StreamPlan(ctx context.Context, plan *Plan, out chan<- Event) error {
	if plan == nil {
		return fmt.Errorf("plan stream: plan is nil")
	}

	emitter := newPlanEmitter(ctx, out)
	if sendError := emitter.send(Event{Kind: EventKindStart}); sendError != nil {
		return sendError
	}
	for _, section := range plan.sections() {
		event := Event{Kind: EventKindSection, Section: section}
		if sendError := emitter.send(event); sendError != nil {
			return sendError
		}
	}
	if sendError := emitter.send(Event{Kind: EventKindPlan, Plan: plan}); sendError != nil {
		return sendError
	}
	return emitter.send(Event{Kind: EventKindDone})
}

// EmitPlan streams plan through renderer using a producer goroutine and a
// consumer goroutine joined by an errgroup. The caller flushes the renderer.
func EmitPlan(ctx context.Context, plan *Plan, renderer PlanRenderer) error {
	if renderer == nil {
		return fmt.Errorf("plan stream: renderer is nil")
	}

	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan Event)

	group.Go(func() error {
		defer close(events)
		return StreamPlan(streamCtx, plan, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if handleError := renderer.Handle(event); handleError != nil {
					return handleError
				}
			}
		}
	})

	if waitError := group.Wait(); waitError != nil && !errors.Is(waitError, context.Canceled) {
		return waitError
	}
	return nil
}

func (plan *Plan) sections() []*SectionEvent {
	sections := []*SectionEvent{
		{
			Name: "invocation",
			Entries: []EntryEvent{
				{Key: "version", Value: plan.Version},
				{Key: "profile", Value: plan.ProfilePath},
			},
		},
		plan.pathsSection(),
	}
	if includesSection := plan.includesSection(); includesSection != nil {
		sections = append(sections, includesSection)
	}
	sections = append(sections,
		plan.excludesSection(),
		plan.limitsSection(),
		plan.scanSection(),
		plan.tokenizerSection(),
		plan.renderSection(),
	)
	return sections
}

func (plan *Plan) pathsSection() *SectionEvent {
	section := &SectionEvent{Name: "paths"}
	for _, path := range plan.Settings.Paths {
		section.Entries = append(section.Entries, EntryEvent{Value: path})
	}
	return section
}

func (plan *Plan) includesSection() *SectionEvent {
	if len(plan.Settings.Includes) == 0 {
		return nil
	}
	section := &SectionEvent{Name: "includes"}
	for _, include := range plan.Settings.Includes {
		section.Entries = append(section.Entries, EntryEvent{Value: include})
	}
	return section
}

func (plan *Plan) excludesSection() *SectionEvent {
	section := &SectionEvent{Name: "excludes"}
	for _, exclude := range plan.Settings.Excludes {
		section.Entries = append(section.Entries, EntryEvent{
			Key:   string(exclude.Kind),
			Value: exclude.Value,
		})
	}
	return section
}

func (plan *Plan) limitsSection() *SectionEvent {
	return &SectionEvent{
		Name: "limits",
		Entries: []EntryEvent{
			{
				Key:     "max-size",
				Value:   strconv.FormatInt(plan.Settings.MaxSize, 10),
				Display: utils.FormatFileSize(plan.Settings.MaxSize),
			},
			{Key: "max-depth", Value: strconv.Itoa(plan.Settings.MaxDepth)},
		},
	}
}

func (plan *Plan) scanSection() *SectionEvent {
	gitignoreValue := "respected"
	if !plan.Scan.RespectGitignore {
		gitignoreValue = "ignored"
	}
	threadsValue := "default"
	if plan.Scan.Threads > 0 {
		threadsValue = strconv.Itoa(plan.Scan.Threads)
	}
	return &SectionEvent{
		Name: "scan",
		Entries: []EntryEvent{
			{Key: "hidden", Value: strconv.FormatBool(plan.Scan.ShowHidden)},
			{Key: "gitignore", Value: gitignoreValue},
			{Key: "threads", Value: threadsValue},
		},
	}
}

func (plan *Plan) tokenizerSection() *SectionEvent {
	section := &SectionEvent{Name: "tokenizer"}
	if plan.Tokenizer == nil {
		section.Entries = append(section.Entries, EntryEvent{Value: "disabled"})
		return section
	}
	section.Entries = append(section.Entries,
		EntryEvent{Key: "kind", Value: string(plan.Tokenizer.Kind)},
		EntryEvent{Key: "encoding", Value: plan.Tokenizer.Encoding},
	)
	if plan.Settings.Model != "" {
		section.Entries = append(section.Entries, EntryEvent{Key: "model", Value: plan.Settings.Model})
	}
	if plan.Settings.TokenizerFile != "" {
		section.Entries = append(section.Entries, EntryEvent{Key: "tokenizer-file", Value: plan.Settings.TokenizerFile})
	}
	return section
}

func (plan *Plan) renderSection() *SectionEvent {
	destinationValue := string(plan.Destination)
	if plan.DestinationPath != "" {
		destinationValue = fmt.Sprintf("%s %s", plan.Destination, plan.DestinationPath)
	}
	section := &SectionEvent{
		Name: "render",
		Entries: []EntryEvent{
			{Key: "format", Value: string(plan.Render.Format)},
			{Key: "destination", Value: destinationValue},
		},
	}
	if plan.Render.PDFPath != "" {
		section.Entries = append(section.Entries, EntryEvent{Key: "pdf", Value: plan.Render.PDFPath})
	}
	if plan.Render.Interactive {
		section.Entries = append(section.Entries, EntryEvent{Key: "interactive", Value: "true"})
	}
	return section
}
