package enum

type OperateType int

const (
	OperateOK           OperateType = 200 //操作成功
	OperateBadRequest   OperateType = 400 //参数或业务规则校验失败
	OperateUnauthorized OperateType = 401 //未认证
	OperateForbidden    OperateType = 403 //无权限
	OperateNotFound     OperateType = 404 //资源不存在
	OperateConflict     OperateType = 409 //资源冲突
	OperateFailed       OperateType = 500 //操作失败
	OperateUpstreamBad  OperateType = 502 //外部依赖不可用，可重试
)

func (o OperateType) String() string {
	switch o {
	case OperateOK:
		return "操作成功"
	case OperateBadRequest:
		return "参数校验失败"
	case OperateUnauthorized:
		return "未认证"
	case OperateForbidden:
		return "无权限"
	case OperateNotFound:
		return "资源不存在"
	case OperateConflict:
		return "资源冲突"
	case OperateFailed:
		return "操作失败"
	case OperateUpstreamBad:
		return "外部服务不可用"
	}
	return "UNKNOWN"
}
