package notifier

import "context"

// Recorder 记录收到的提示，测试时用来断言提示的内容和次数
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Success(ctx context.Context, msg string) {
	r.Messages = append(r.Messages, Message{Level: "success", Content: msg})
}

func (r *Recorder) Warning(ctx context.Context, msg string) {
	r.Messages = append(r.Messages, Message{Level: "warning", Content: msg})
}

func (r *Recorder) Error(ctx context.Context, msg string) {
	r.Messages = append(r.Messages, Message{Level: "error", Content: msg})
}
