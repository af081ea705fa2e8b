package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 封装zap日志器，提供结构化日志功能
type Logger struct {
	*zap.Logger
	config Config
}

// Config 日志配置
type Config struct {
	Level      string   `yaml:"level"`      // debug, info, warn, error
	Outputs    []string `yaml:"outputs"`    // stdout, file
	OutputFile string   `yaml:"outputFile"` // 日志文件路径
	Format     string   `yaml:"format"`     // json 或 console
	MaxSize    int      `yaml:"maxSize"`    // 单个日志文件最大MB
	MaxBackups int      `yaml:"maxBackups"` // 保留的旧日志文件数
	MaxAge     int      `yaml:"maxAge"`     // 保留天数
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Outputs:    []string{"stdout"},
		Format:     "console",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// New 创建新的Logger实例
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	cores := []zapcore.Core{}

	if contains(cfg.Outputs, "stdout") {
		var encoder zapcore.Encoder
		if cfg.Format == "console" {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	// 文件输出，按大小滚动
	if contains(cfg.Outputs, "file") {
		if cfg.OutputFile == "" {
			return nil, fmt.Errorf("file output requires outputFile")
		}
		fileEncoder := zap.NewProductionEncoderConfig()
		fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoder),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.OutputFile,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			}),
			level,
		))
	}

	core := zapcore.NewTee(cores...)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{
		Logger: zapLogger,
		config: cfg,
	}, nil
}

// NewNop 丢弃所有输出，测试用
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: DefaultConfig()}
}

// Wrap 包装已有的 zap.Logger
func Wrap(l *zap.Logger) *Logger {
	return &Logger{Logger: l, config: DefaultConfig()}
}

// WithFields 添加字段返回新的logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With(toZap(fields)...),
		config: l.config,
	}
}

// LogTrade 记录成交事件
func (l *Logger) LogTrade(event string, fields map[string]interface{}) {
	l.Debug("trade_event", eventFields(event, fields)...)
}

// LogRisk 记录风控事件（限仓拒单属于正常路径，使用 debug 级别）
func (l *Logger) LogRisk(event string, fields map[string]interface{}) {
	l.Debug("risk_event", eventFields(event, fields)...)
}

// LogRun 记录一次模拟运行的开始/结束
func (l *Logger) LogRun(event string, fields map[string]interface{}) {
	l.Info("run_event", eventFields(event, fields)...)
}

// LogError 记录错误并附带上下文
func (l *Logger) LogError(err error, context map[string]interface{}) {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error"] = err.Error()
	context["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	l.Error("error_event", toZap(context)...)
}

// Close 关闭日志器
func (l *Logger) Close() error {
	return l.Sync()
}

func eventFields(event string, fields map[string]interface{}) []zap.Field {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event"] = event
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	return toZap(fields)
}

func toZap(fields map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
