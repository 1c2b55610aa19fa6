package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// errFormClosed 对应收银台返回的用户关闭窗口的错误码
var errFormClosed = errors.New("checkout form closed")

// NewScriptLoader 先确认收银台脚本资源可用，再构造基于 HTTP 接口的收银台客户端。
// 脚本不可用时初始化失败，且在进程生命周期内不再重试
func NewScriptLoader(scriptURL string, vaultURL string, client *http.Client) Loader {
	return func() (Widget, error) {
		resp, err := client.Get(scriptURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load checkout script: %w", err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to load checkout script: http %d", resp.StatusCode)
		}

		return &httpWidget{
			vaultURL: vaultURL,
			client:   client,
		}, nil
	}
}

// httpWidget 通过收银台的 HTTP 接口完成令牌化
type httpWidget struct {
	vaultURL  string
	client    *http.Client
	publicKey string
}

func (w *httpWidget) Configure(publicKey string) {
	w.publicKey = publicKey
}

func (w *httpWidget) Open(req OpenRequest) {
	go func() {
		token, err := w.createToken(req)
		switch {
		case err == nil:
			req.OnCreateTokenSuccess(token)
		case errors.Is(err, errFormClosed):
			req.OnFormClosed()
		default:
			req.OnError(err)
		}
	}()
}

func (w *httpWidget) createToken(req OpenRequest) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":               req.Amount,
		"currency":             req.Currency,
		"defaultPaymentMethod": req.DefaultPaymentMethod,
		"description":          req.Description,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequest(http.MethodPost, w.vaultURL+"/tokens", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(w.publicKey, "")

	resp, err := w.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		ID      string `json:"id"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		if body.Code == "checkout_closed" {
			return "", errFormClosed
		}
		if body.Message != "" {
			return "", fmt.Errorf("checkout error %s: %s", body.Code, body.Message)
		}
		return "", fmt.Errorf("checkout error: http %d", resp.StatusCode)
	}

	return body.ID, nil
}
