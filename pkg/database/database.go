package database

import (
	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立 MySQL 连接。migrate 为真时执行建表与默认角色初始化，
// release 模式下默认跳过，需要 -migrate 参数显式开启。
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// 把 MySQL 1062 翻译成 gorm.ErrDuplicatedKey，业务层按唯一键冲突分支处理
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.College{},
		&model.Department{},
		&model.Major{},
		&model.Course{},
		&model.CourseOffering{},
		&model.Enrollment{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.QuizAttempt{},
		&model.Answer{},
		&model.Resource{},
		&model.Notification{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedRolesAndPermissions(db)

	return db, nil
}

// seedRolesAndPermissions 初始化默认的角色-权限矩阵（仅空库时写入）
func seedRolesAndPermissions(db *gorm.DB) {
	var count int64
	db.Model(&model.Permission{}).Count(&count)
	if count > 0 {
		return
	}

	perms := []model.Permission{
		{Code: model.PermAcademicManage, Name: "院系专业管理", Description: "学院/系/专业的增删改"},
		{Code: model.PermCourseManage, Name: "课程管理", Description: "课程与开课实例的增删改"},
		{Code: model.PermEnrollmentManage, Name: "选课管理", Description: "学生选课/退课管理"},
		{Code: model.PermQuizManage, Name: "测验管理", Description: "测验创建、编辑、发布"},
		{Code: model.PermQuizGrade, Name: "测验成绩", Description: "查看成绩册、人工评分"},
		{Code: model.PermResourceManage, Name: "资源管理", Description: "课程资源上传与删除"},
		{Code: model.PermRoleManage, Name: "角色管理", Description: "角色与权限矩阵编辑"},
	}
	for i := range perms {
		db.Create(&perms[i])
	}

	byCode := func(codes ...string) []model.Permission {
		out := make([]model.Permission, 0, len(codes))
		for _, c := range codes {
			for _, p := range perms {
				if p.Code == c {
					out = append(out, p)
				}
			}
		}
		return out
	}

	roles := []model.Role{
		{Name: string(model.Admin), Description: "系统管理员", Permissions: perms},
		{Name: string(model.Instructor), Description: "任课教师", Permissions: byCode(
			model.PermCourseManage,
			model.PermEnrollmentManage,
			model.PermQuizManage,
			model.PermQuizGrade,
			model.PermResourceManage,
		)},
		{Name: string(model.Student), Description: "学生"},
	}
	for i := range roles {
		db.Create(&roles[i])
	}
}
