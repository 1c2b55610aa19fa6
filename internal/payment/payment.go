package payment

import (
	"context"
	"errors"
	"sync"
)

// ErrCancelled 表示用户关闭了支付窗口
var ErrCancelled = errors.New("payment cancelled by user")

// OpenRequest 按第三方收银台的回调式约定发起一次支付
type OpenRequest struct {
	Amount               int64
	Currency             string
	DefaultPaymentMethod string
	Description          string

	OnCreateTokenSuccess func(token string)
	OnError              func(err error)
	OnFormClosed         func()
}

// Widget 是第三方收银台组件暴露的全局对象
type Widget interface {
	Configure(publicKey string)
	Open(req OpenRequest)
}

// Loader 加载收银台组件，整个进程生命周期内只会被调用一次
type Loader func() (Widget, error)

// Config 是一次支付的参数
type Config struct {
	Amount      int64  `validate:"gt=0"`
	Currency    string `validate:"required,len=3"`
	Description string
}

// Service 负责收银台组件的一次性初始化和每笔支付的令牌化。
// 初始化的结果（包括失败）会被缓存，之后的支付共享同一个结果，不会重试
type Service struct {
	loader    Loader
	publicKey string

	initOnce sync.Once
	widget   Widget
	initErr  error
}

func NewService(loader Loader, publicKey string) *Service {
	return &Service{
		loader:    loader,
		publicKey: publicKey,
	}
}

func (s *Service) init() error {
	s.initOnce.Do(func() {
		widget, err := s.loader()
		if err != nil {
			s.initErr = err
			return
		}
		widget.Configure(s.publicKey)
		s.widget = widget
	})
	return s.initErr
}

type result struct {
	token string
	err   error
}

// CreatePayment 打开收银台完成一次令牌化，返回支付令牌。
// 用户关闭支付窗口时返回 ErrCancelled
func (s *Service) CreatePayment(ctx context.Context, cfg Config) (string, error) {
	if err := s.init(); err != nil {
		return "", err
	}

	// 三个回调只有最先触发的一个生效
	done := make(chan result, 1)
	var once sync.Once
	settle := func(r result) {
		once.Do(func() {
			done <- r
		})
	}

	s.widget.Open(OpenRequest{
		Amount:               cfg.Amount,
		Currency:             cfg.Currency,
		DefaultPaymentMethod: "credit_card",
		Description:          cfg.Description,
		OnCreateTokenSuccess: func(token string) {
			settle(result{token: token})
		},
		OnError: func(err error) {
			settle(result{err: err})
		},
		OnFormClosed: func() {
			settle(result{err: ErrCancelled})
		},
	})

	select {
	case r := <-done:
		return r.token, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
