package service

import "familytree-api/internal/domain"

// CanMutateUser 变更边界上的访问策略：持有 SUPERADMIN 角色的用户
// 不可被任何人修改（含其他管理员），防止通过角色管理接口锁死或夺权。
// 该规则不是存储不变量，每次变更调用都要重新判定。
func CanMutateUser(actorID uint, target *domain.User) error {
	if target.HasRole(domain.RoleSuperAdmin) {
		return domain.Forbiddenf("cannot modify a super admin account")
	}
	_ = actorID // 目前策略与操作者无关，保留参数以固定契约
	return nil
}
