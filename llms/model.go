package llms

// MessageModel is the serializable form of a Message. Parts are
// interface values and cannot round-trip through JSON directly, so
// stores persist this envelope instead.
type MessageModel struct {
	Role  Role        `json:"role"`
	Parts []PartModel `json:"parts"`
}

// PartModel is one serialized content part.
type PartModel struct {
	Type         string            `json:"type"`
	Text         string            `json:"text,omitempty"`
	ToolCall     *ToolCall         `json:"tool_call,omitempty"`
	ToolResponse *ToolCallResponse `json:"tool_response,omitempty"`
}

const (
	partTypeText         = "text"
	partTypeToolCall     = "tool_call"
	partTypeToolResponse = "tool_response"
)

// ConvertMessageToModel converts a Message to its serializable form.
func ConvertMessageToModel(msg Message) MessageModel {
	model := MessageModel{
		Role:  msg.Role,
		Parts: make([]PartModel, 0, len(msg.Parts)),
	}
	for _, part := range msg.Parts {
		switch p := part.(type) {
		case TextContent:
			model.Parts = append(model.Parts, PartModel{
				Type: partTypeText,
				Text: p.Text,
			})
		case ToolCall:
			tc := p
			model.Parts = append(model.Parts, PartModel{
				Type:     partTypeToolCall,
				ToolCall: &tc,
			})
		case ToolCallResponse:
			tr := p
			model.Parts = append(model.Parts, PartModel{
				Type:         partTypeToolResponse,
				ToolResponse: &tr,
			})
		}
	}
	return model
}

// ToMessage converts the serialized form back to a Message. Parts of
// unknown type are dropped.
func (m MessageModel) ToMessage() Message {
	msg := Message{
		Role:  m.Role,
		Parts: make([]ContentPart, 0, len(m.Parts)),
	}
	for _, part := range m.Parts {
		switch part.Type {
		case partTypeText:
			msg.Parts = append(msg.Parts, TextContent{Text: part.Text})
		case partTypeToolCall:
			if part.ToolCall != nil {
				msg.Parts = append(msg.Parts, *part.ToolCall)
			}
		case partTypeToolResponse:
			if part.ToolResponse != nil {
				msg.Parts = append(msg.Parts, *part.ToolResponse)
			}
		}
	}
	return msg
}
