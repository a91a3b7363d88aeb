package response

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 保证 data 不为 null（显式传入的 typed nil 除外）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error customMsg 为空时使用默认文案
func Error(code int, customMsg string) Resp {
	return Fail(code, customMsg, nil)
}

// Fail 带附加数据的失败响应，如字段级校验错误
func Fail(code int, customMsg string, data interface{}) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, data)
}
