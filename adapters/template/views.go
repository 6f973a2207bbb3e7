package instructiontemplate

import (
	"fmt"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

type metaView struct {
	Title    string
	Author   string
	Subject  string
	Category string
	Color    string
	Created  string
}

type blockView struct {
	Kind      string
	Text      string
	Lines     []string
	Rows      []instruction.KeyValueRow
	Fill      string
	TextColor string
	Style     string
	Captions  []string
	Rule      string
}

type categoryView struct {
	Key   string
	Name  string
	Icon  string
	Color string
}

func documentMeta(doc instruction.Document) metaView {
	return metaView{
		Title:    doc.Meta.Title,
		Author:   doc.Meta.Author,
		Subject:  doc.Meta.Subject,
		Category: string(doc.Meta.Category.Key),
		Color:    doc.Meta.Category.Color.Hex(),
		Created:  doc.Meta.CreatedAt.Format(instruction.DateLayout),
	}
}

func pageCSS(page instruction.PageGeometry) string {
	if page.Size == "" {
		page = instruction.A4
	}
	return fmt.Sprintf("size: %s; margin: %gmm %gmm %gmm %gmm;", page.Size, page.MarginTop, page.MarginRight, page.MarginBottom, page.MarginLeft)
}

func blockViews(blocks []instruction.Block) []blockView {
	views := make([]blockView, 0, len(blocks))
	for _, block := range blocks {
		view := blockView{Kind: string(block.Kind())}
		switch b := block.(type) {
		case instruction.TitleBlock:
			view.Text = b.Text
			view.Style = fmt.Sprintf("font-size:%gpt;color:%s;margin-bottom:%gpt", b.FontSize, b.Color.Hex(), b.SpaceAfter)
		case instruction.SpacerBlock:
			view.Style = fmt.Sprintf("height:%gmm", b.Height)
		case instruction.KeyValueTable:
			view.Rows = b.Rows
			view.Style = fmt.Sprintf("font-size:%gpt", b.FontSize)
			view.TextColor = b.LabelColor.Hex()
		case instruction.HeadingBar:
			view.Text = b.Label
			view.Fill = b.Fill.Hex()
			view.TextColor = b.TextColor.Hex()
			view.Style = fmt.Sprintf("font-size:%gpt;padding:%gmm %gmm", b.FontSize, b.PaddingY, b.PaddingX)
		case instruction.Paragraph:
			view.Lines = b.Lines
			view.Style = fmt.Sprintf("font-size:%gpt;line-height:%gpt", b.FontSize, b.Leading)
		case instruction.SignatureBlock:
			view.Rule = b.Rule
			view.Captions = b.Captions[:]
			view.Style = fmt.Sprintf("font-size:%gpt", b.FontSize)
		}
		views = append(views, view)
	}
	return views
}

func categoryViews(categories []instruction.Category) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryView{
			Key:   string(c.Key),
			Name:  c.Name,
			Icon:  c.Icon,
			Color: c.Color.Hex(),
		})
	}
	return views
}
